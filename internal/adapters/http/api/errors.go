package api

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")
)
