package access

import "errors"

var (
	// ErrNotFound hides the existence of resources outside the caller's companies.
	ErrNotFound     = errors.New("Not found")
	ErrAccessDenied = errors.New("Access denied")
)
