package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidStage    = errors.New("unknown candidate stage")
	ErrNotInitialized  = errors.New("application not initialized")
)
