package product

import "errors"

var (
	ErrNameRequired     = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("price must be a positive number")
	ErrCurrencyRequired = errors.New("currency is required")
	ErrNoUsableImages   = errors.New("at least one successfully uploaded image is required")
	ErrProductNotFound  = errors.New("product not found")
)
