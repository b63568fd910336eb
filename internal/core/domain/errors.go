package domain

import "errors"

// Authentication errors. ErrUserNotFound is surfaced only in server-side
// logs; clients always see ErrInvalidCredentials to prevent username
// enumeration.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionInvalid     = errors.New("session invalid")
)

// Token verification errors.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
)

// Authorization errors. Unauthenticated means no principal at all (401),
// Forbidden means a principal with an insufficient authority set (403).
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
)

var ErrProductNotFound = errors.New("product not found")
