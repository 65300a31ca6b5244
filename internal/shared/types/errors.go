package types

import "errors"

var (
	ErrMissingConfig         = errors.New("missing required configuration")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrAccountNameNotFound   = errors.New("account name not found in dimension attributes")
	ErrMalformedCostResponse = errors.New("malformed Cost Explorer response")
	ErrInvalidCost           = errors.New("invalid cost amount")
)
