package orchestrator

import "errors"

var (
	// ErrNotFound marks an execution id with no stored record, either
	// unknown or expired past the retention window.
	ErrNotFound = errors.New("execution not found")

	// ErrEmptyDirective rejects an execution request with no directive.
	ErrEmptyDirective = errors.New("directive must not be empty")
)
