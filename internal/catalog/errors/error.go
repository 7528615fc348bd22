// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var (
	// ErrProductNotFound is returned when no product exists with the requested ID.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidID is returned when an identifier is not a positive integer.
	ErrInvalidID = errors.New("id must be a positive number")

	// ErrInvalidPagination is returned when page or limit is not a positive integer.
	ErrInvalidPagination = errors.New("pagination parameters must be positive numbers")
)
