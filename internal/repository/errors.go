// Package repository holds the data-access layer: one repo struct per
// aggregate, all sharing a gorm handle. Sentinel errors let the handlers
// map storage outcomes onto HTTP statuses without string matching.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
// Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrOutOfStock is returned when a sale line requests more units than
// the product currently holds. The whole sale aborts; stock is never
// driven negative and never partially fulfilled.
var ErrOutOfStock = errors.New("insufficient stock")

// ErrValidation is returned for malformed or missing input detected
// before any mutation begins. Handlers translate it into an HTTP 400.
var ErrValidation = errors.New("validation failed")

// ErrDuplicateEmail is returned when registering an email that is
// already taken. Reported as a validation failure to the client.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned for every authentication failure:
// unknown email, deactivated account, or wrong password. One error for
// all three so the response never leaks which case occurred.
var ErrInvalidCredentials = errors.New("invalid email or password")
