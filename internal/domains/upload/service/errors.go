package service

import "errors"

var (
	ErrNoFiles              = errors.New("no files uploaded")
	ErrTooManyFiles         = errors.New("too many files in one request")
	ErrFileTooLarge         = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidImage         = errors.New("file is not a decodable image")
)
