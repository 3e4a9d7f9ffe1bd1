package services

import "errors"

// Service-level sentinel errors mapped to API errors at the transport
// layer.
var (
	// ErrFileNotFound indicates a delete targeted a file that is not
	// in the store.
	ErrFileNotFound = errors.New("stored file not found")
)
