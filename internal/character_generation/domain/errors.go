package domain

import "errors"

var (
	// ErrNoImage means the image service answered without an image reference.
	ErrNoImage = errors.New("image service returned no image")

	ErrMalformedResponse = errors.New("malformed image service response")
)
