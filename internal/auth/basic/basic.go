// Package basic implements HTTP Basic Authentication: it decodes an
// Authorization header into a verified principal. Every step of the chain
// short-circuits to an absent result, malformed input never propagates.
package basic

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"unicode/utf8"

	"auth-api/internal/auth"
	"auth-api/internal/user"
)

const prefix = "Basic "

type Auth struct {
	users user.Store
}

func New(users user.Store) *Auth {
	return &Auth{users: users}
}

func (a *Auth) Name() string { return "basic" }

func (a *Auth) Supports(r *http.Request) bool {
	_, ok := AuthorizationHeader(r)
	return ok
}

// AuthorizationHeader reads the Authorization header verbatim.
func AuthorizationHeader(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	header := r.Header.Get("Authorization")
	return header, header != ""
}

// ExtractEncodedCredentials strips the literal "Basic " prefix.
func ExtractEncodedCredentials(header string) (string, bool) {
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return strings.TrimPrefix(header, prefix), true
}

// DecodeCredentials base64-decodes to UTF-8 text.
func DecodeCredentials(encoded string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// SplitCredentials splits on the first colon, the password may itself
// contain colons.
func SplitCredentials(decoded string) (email, password string, ok bool) {
	return strings.Cut(decoded, ":")
}

// ResolvePrincipal returns the first user whose stored hash verifies
// against the supplied password. Lookup failures yield no principal.
func (a *Auth) ResolvePrincipal(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	users, err := a.users.FindBy(ctx, user.Predicate{Email: email})
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	for _, u := range users {
		if user.VerifyPassword(u.PasswordHash, password) {
			return &u, nil
		}
	}

	return nil, auth.ErrInvalidCredentials
}

// CurrentPrincipal composes the extraction chain in strict sequence.
func (a *Auth) CurrentPrincipal(ctx context.Context, r *http.Request) (*user.User, error) {
	header, ok := AuthorizationHeader(r)
	if !ok {
		return nil, auth.ErrNoCredentials
	}

	encoded, ok := ExtractEncodedCredentials(header)
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}

	decoded, ok := DecodeCredentials(encoded)
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}

	email, password, ok := SplitCredentials(decoded)
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}

	return a.ResolvePrincipal(ctx, email, password)
}
