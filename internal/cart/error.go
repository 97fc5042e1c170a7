package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrInvalidProductID  = errors.New("product id is required")
	ErrNotCustomizable   = errors.New("product does not accept customization")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Resource State --
	ErrCartEmpty = errors.New("cart is empty")

	// -- Storage Failures --
	ErrFailedLoadCart  = errors.New("failed to load cart")
	ErrFailedSaveCart  = errors.New("failed to save cart")
	ErrFailedClearCart = errors.New("failed to clear cart")
)
