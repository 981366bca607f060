// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateName = errors.New("product name already exists")
var ErrMissingFields = errors.New("required product fields are missing")
