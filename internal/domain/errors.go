package domain

import "errors"

var (
	ErrNotConfigured = errors.New("venue search credentials not configured")
	ErrUpstream      = errors.New("venue search upstream unavailable")
	ErrInvalidQuery  = errors.New("invalid discover query")
)
