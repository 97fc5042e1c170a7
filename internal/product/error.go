package product

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyName        = errors.New("product name cannot be empty")
	ErrEmptyCategory    = errors.New("product category cannot be empty")
	ErrNegativePrice    = errors.New("product price cannot be negative")
	ErrNegativeStock    = errors.New("product stock cannot be negative")
	ErrNoFieldsToUpdate = errors.New("no product fields to update")
	ErrInvalidProductID = errors.New("product id is required")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Database & Operation Failures --
	ErrFailedListProducts  = errors.New("failed to list products")
	ErrFailedGetProduct    = errors.New("failed to get product")
	ErrFailedCreateProduct = errors.New("failed to create product")
	ErrFailedUpdateProduct = errors.New("failed to update product")
	ErrFailedDeleteProduct = errors.New("failed to delete product")
)
