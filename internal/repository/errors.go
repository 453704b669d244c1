// Package repository implements MongoDB persistence for users and
// businesses. Sentinel errors defined here let handlers map storage
// failures onto the right HTTP responses without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when no document matches the given id or filter.
// Handlers translate this into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert collides with the unique email
// index. Handlers translate this into an HTTP 400.
var ErrEmailExists = errors.New("email already in use")
