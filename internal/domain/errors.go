package domain

import "errors"

// Contract violations. A full quota or an empty shelf is not an error; those
// are reported as a false result and retried by the caller.
var (
	ErrInvalidQuota     = errors.New("quota must be positive")
	ErrUnknownProducer  = errors.New("unknown producer")
	ErrUnknownCart      = errors.New("unknown cart")
	ErrProductNotInCart = errors.New("product not in cart")
)
