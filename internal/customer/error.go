package customer

import "errors"

var (
	// -- Validation & Input --
	ErrMissingContact = errors.New("customer phone or email is required")

	// -- Database & Operation Failures --
	ErrFailedLookupCustomer = errors.New("failed to look up customer")
	ErrFailedCreateCustomer = errors.New("failed to create customer")
	ErrFailedListCustomers  = errors.New("failed to list customers")
)
