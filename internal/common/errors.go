// Package common defines shared constants and sentinel errors used across
// the Bloggy server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Account lifecycle errors.
	ErrorEmailTaken      = errors.New("email is already taken")
	ErrorEmailUnverified = errors.New("email not verified")
	ErrorBadCredentials  = errors.New("invalid email or password")

	// Token lifecycle errors.
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	// Upload errors.
	ErrorFileTooLarge = errors.New("file too large")
	ErrorBadFileType  = errors.New("invalid file type")
	ErrorNoFile       = errors.New("no file uploaded")
)
