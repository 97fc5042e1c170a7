package order

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidOrderID = errors.New("order id is required")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")

	// -- Database & Operation Failures --
	ErrFailedResolveCustomer = errors.New("failed to resolve customer")
	ErrFailedCreateOrder     = errors.New("failed to create order")
	ErrFailedCreateLines     = errors.New("failed to create order lines")
	ErrFailedListOrders      = errors.New("failed to list orders")
	ErrFailedGetOrder        = errors.New("failed to get order")
	ErrFailedUpdateStatus    = errors.New("failed to update order status")
)
