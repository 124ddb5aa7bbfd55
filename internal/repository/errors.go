// Package repository contains data access logic separated from HTTP
// handlers. This file defines error values shared by multiple
// repositories. Sentinel errors let handlers distinguish failure
// scenarios without inspecting driver-specific errors: for example,
// ErrForbidden indicates that the current user is not authorized to
// mutate a resource owned by someone else and should map to HTTP 403.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own and they are not an administrator.
var ErrForbidden = errors.New("forbidden")
