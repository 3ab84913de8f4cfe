package domain

import "errors"

// ErrNotFound is returned when an identifier matches nothing in the object graph
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a request is malformed
var ErrInvalidInput = errors.New("invalid input")

// ErrUnavailable is returned when the object store cannot be reached
var ErrUnavailable = errors.New("object store unavailable")
