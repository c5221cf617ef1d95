package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	u, err := svc.Register(ctx, "foo@bar.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "secret", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "foo@bar.com", "secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	// email lookup is case-insensitive
	_, err = svc.Authenticate(ctx, "FOO@BAR.COM", "secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "foo@bar.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "who@bar.com", "secret")
	require.ErrorIs(t, err, ErrUnknownEmail)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	_, err := svc.Register(ctx, "foo@bar.com", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "foo@bar.com", "other")
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	_, err = svc.Register(ctx, "FOO@bar.com", "other")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestResetPasswordFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	_, err := svc.Register(ctx, "foo@bar.com", "old-password")
	require.NoError(t, err)

	_, err = svc.ResetPasswordToken(ctx, "who@bar.com")
	require.ErrorIs(t, err, ErrUnknownEmail)

	token, err := svc.ResetPasswordToken(ctx, "foo@bar.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.ErrorIs(t, svc.UpdatePassword(ctx, "", "x"), ErrInvalidResetToken)
	require.ErrorIs(t, svc.UpdatePassword(ctx, "bogus", "x"), ErrInvalidResetToken)

	require.NoError(t, svc.UpdatePassword(ctx, token, "new-password"))

	_, err = svc.Authenticate(ctx, "foo@bar.com", "old-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "foo@bar.com", "new-password")
	require.NoError(t, err)

	// the token is single-use
	require.ErrorIs(t, svc.UpdatePassword(ctx, token, "again"), ErrInvalidResetToken)
}

func TestMemoryStore_FindBy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	u, err := store.Create(ctx, "foo@bar.com", "hash")
	require.NoError(t, err)

	sessionID := "s1"
	require.NoError(t, store.Update(ctx, u.ID, Fields{SessionID: &sessionID}))

	byID, err := store.FindBy(ctx, Predicate{ID: u.ID})
	require.NoError(t, err)
	require.Len(t, byID, 1)

	bySession, err := store.FindBy(ctx, Predicate{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, bySession, 1)
	require.Equal(t, u.ID, bySession[0].ID)

	none, err := store.FindBy(ctx, Predicate{Email: "foo@bar.com", SessionID: "other"})
	require.NoError(t, err)
	require.Empty(t, none)

	require.ErrorIs(t, store.Update(ctx, "missing", Fields{SessionID: &sessionID}), ErrNotFound)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	require.True(t, VerifyPassword(hash, "secret"))
	require.False(t, VerifyPassword(hash, "wrong"))
	require.False(t, VerifyPassword("not-a-hash", "secret"))
}
