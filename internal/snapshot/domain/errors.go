package domain

import "errors"

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrMalformedDraft  = errors.New("malformed character form data")
)
