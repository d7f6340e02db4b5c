package corpus

import "errors"

// Sentinel errors returned by Parser. Callers match them with errors.Is.
var (
	ErrInputNotFound   = errors.New("input not found")
	ErrNotARegularFile = errors.New("not a regular file")
	ErrRead            = errors.New("read failure")
	ErrPersistence     = errors.New("persistence failure")
)
