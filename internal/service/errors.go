package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidKDFParams    = errors.New("kdf parameters rejected")

	// ErrUnauthorized covers every verification failure: wrong verifier and
	// absent account alike, so the response shape never reveals which one
	// happened.
	ErrUnauthorized = errors.New("verification failed")

	ErrInvalidBlobName     = errors.New("blob name must be between 1 and 255 bytes")
	ErrInvalidVersion      = errors.New("blob version must be a positive integer")
	ErrPageLimitOutOfRange = errors.New("page limit or offset out of range")
)
