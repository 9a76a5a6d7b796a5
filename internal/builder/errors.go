package builder

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidStep     = errors.New("invalid wizard step")
	ErrInvalidIndex    = errors.New("index out of range")
	ErrStaleResult     = errors.New("result superseded by a newer request")
	ErrInvalidInput    = errors.New("invalid input")
)
