package user

import "time"

// User is the principal record the auth core reads. Credential fields are
// only ever written through the account service, never by the auth core.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	SessionID    string
	ResetToken   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
