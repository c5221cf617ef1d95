package basic

import (
	"context"
	"encoding/base64"
	"net/http/httptest"
	"testing"

	"auth-api/internal/auth"
	"auth-api/internal/user"

	"github.com/stretchr/testify/require"
)

func TestAuthorizationHeader(t *testing.T) {
	_, ok := AuthorizationHeader(nil)
	require.False(t, ok)

	r := httptest.NewRequest("GET", "/profile", nil)
	_, ok = AuthorizationHeader(r)
	require.False(t, ok)

	r.Header.Set("Authorization", "Basic abc")
	header, ok := AuthorizationHeader(r)
	require.True(t, ok)
	require.Equal(t, "Basic abc", header)
}

func TestExtractEncodedCredentials(t *testing.T) {
	_, ok := ExtractEncodedCredentials("Bearer abc")
	require.False(t, ok)

	_, ok = ExtractEncodedCredentials("basic abc")
	require.False(t, ok)

	encoded, ok := ExtractEncodedCredentials("Basic abc")
	require.True(t, ok)
	require.Equal(t, "abc", encoded)
}

func TestDecodeCredentials(t *testing.T) {
	_, ok := DecodeCredentials("not base64!!")
	require.False(t, ok)

	// valid base64, invalid UTF-8
	_, ok = DecodeCredentials(base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe}))
	require.False(t, ok)

	decoded, ok := DecodeCredentials(base64.StdEncoding.EncodeToString([]byte("a:b")))
	require.True(t, ok)
	require.Equal(t, "a:b", decoded)
}

// The split happens on the first colon: the password may itself contain
// colons.
func TestSplitCredentials(t *testing.T) {
	_, _, ok := SplitCredentials("no-colon-here")
	require.False(t, ok)

	email, password, ok := SplitCredentials("foo@bar.com:pa:ss")
	require.True(t, ok)
	require.Equal(t, "foo@bar.com", email)
	require.Equal(t, "pa:ss", password)
}

func TestCurrentPrincipal(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()

	hash, err := user.HashPassword("pa:ss")
	require.NoError(t, err)
	registered, err := store.Create(ctx, "foo@bar.com", hash)
	require.NoError(t, err)

	a := New(store)

	header := func(raw string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
	}

	// no header at all
	r := httptest.NewRequest("GET", "/profile", nil)
	_, err = a.CurrentPrincipal(ctx, r)
	require.ErrorIs(t, err, auth.ErrNoCredentials)

	// happy path, colon-in-password
	r = httptest.NewRequest("GET", "/profile", nil)
	r.Header.Set("Authorization", header("foo@bar.com:pa:ss"))
	principal, err := a.CurrentPrincipal(ctx, r)
	require.NoError(t, err)
	require.Equal(t, registered.ID, principal.ID)

	// wrong password
	r = httptest.NewRequest("GET", "/profile", nil)
	r.Header.Set("Authorization", header("foo@bar.com:nope"))
	_, err = a.CurrentPrincipal(ctx, r)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// unknown email
	r = httptest.NewRequest("GET", "/profile", nil)
	r.Header.Set("Authorization", header("who@bar.com:pa:ss"))
	_, err = a.CurrentPrincipal(ctx, r)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// malformed base64
	r = httptest.NewRequest("GET", "/profile", nil)
	r.Header.Set("Authorization", "Basic %%%")
	_, err = a.CurrentPrincipal(ctx, r)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
