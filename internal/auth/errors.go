package auth

import "errors"

// Sentinel failures for the authentication strategies. Every one of these
// means "no principal", they exist so callers can tell the reasons apart.
// Anything else returned by a strategy is a backend failure.
var (
	ErrNoCredentials      = errors.New("auth: missing credentials")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidUserID      = errors.New("auth: invalid user id")
	ErrSessionNotFound    = errors.New("auth: session not found")
	ErrSessionExpired     = errors.New("auth: session expired")
)

// Absent reports whether err is one of the no-principal outcomes, as
// opposed to a backend failure that must stay visible.
func Absent(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired)
}
