package domain

import "errors"

// ErrProductNotFound is returned when a lookup or update targets an unknown product.
var ErrProductNotFound = errors.New("product not found")
