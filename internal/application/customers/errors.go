package customers

import "errors"

var (
	ErrCustomerNotFound = errors.New("Customer not found")
	ErrInvalidStatus    = errors.New("Invalid customer status")
)
