package service

import "errors"

// Sentinel errors mapped to HTTP status codes at the handler boundary
var (
	// ErrNotFound means the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the requester is not the owner of the resource
	ErrForbidden = errors.New("operation forbidden")

	// ErrInvalidCredentials means login failed
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken means the presented token is unknown or expired
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUsernameTaken and ErrEmailTaken reject duplicate registrations
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrPasswordMismatch means password and password2 differ
	ErrPasswordMismatch = errors.New("password fields didn't match")

	// ErrPasswordTooShort rejects weak passwords
	ErrPasswordTooShort = errors.New("password is too short")
)
