package model

import "errors"

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email and wrong password alike so
	// login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
