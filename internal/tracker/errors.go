package tracker

import "errors"

var (
	// ErrInvalidPeriod marks an unknown period name on a reset request.
	ErrInvalidPeriod = errors.New("invalid period")
)
