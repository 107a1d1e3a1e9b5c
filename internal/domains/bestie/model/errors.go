package model

import "errors"

// Not found. ErrBestieNotFound covers both "does not exist" and "exists but
// is not visible to this caller" so secret-code lookups leak nothing.
var (
	ErrBestieNotFound = errors.New("bestie not found")
	ErrImageNotFound  = errors.New("image not found in gallery")
)

// Conflict
var (
	ErrNicknameTaken = errors.New("nickname already exists for your account")
)

// Validation
var (
	ErrInvalidIndex = errors.New("index out of range")
)
