package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid Email")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrCustomerNotLinked     = errors.New("Customer account is not linked to a customer profile")
	ErrUnknownRole           = errors.New("Account role is not allowed to sign in")
)
