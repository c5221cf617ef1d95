package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"auth-api/internal/auth"
	"auth-api/internal/session"
	"auth-api/internal/user"

	"github.com/stretchr/testify/require"
)

const cookieName = "_my_session_id"

type fixture struct {
	lifecycle *session.Lifecycle
	guarded   http.Handler
	userID    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	users := user.NewMemoryStore()
	u, err := users.Create(context.Background(), "foo@bar.com", "hash")
	require.NoError(t, err)

	lc := session.New(session.NewMemoryStore(), users, cookieName)
	facade := auth.NewFacade(lc, []string{"/health/"})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, ok := PrincipalFromContext(r.Context()); ok {
			w.Header().Set("X-User", principal.Email)
		}
		w.WriteHeader(http.StatusOK)
	})

	return fixture{
		lifecycle: lc,
		guarded:   NewAuthMiddleware(facade).RequireAuth(next),
		userID:    u.ID,
	}
}

func TestRequireAuth_ExcludedPathPasses(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.guarded.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-User"))
}

// No credential material at all is a 401; an unresolvable credential is
// a 403.
func TestRequireAuth_MissingVersusInvalid(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.guarded.ServeHTTP(rec, httptest.NewRequest("GET", "/profile", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "never-issued"})
	rec = httptest.NewRecorder()
	f.guarded.ServeHTTP(rec, r)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_ValidSession(t *testing.T) {
	f := newFixture(t)

	sessionID, err := f.lifecycle.CreateSession(context.Background(), f.userID)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	f.guarded.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "foo@bar.com", rec.Header().Get("X-User"))
}

func TestRequireAuth_DestroyedSessionRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sessionID, err := f.lifecycle.CreateSession(ctx, f.userID)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: sessionID})

	destroyed, err := f.lifecycle.DestroySession(ctx, r)
	require.NoError(t, err)
	require.True(t, destroyed)

	rec := httptest.NewRecorder()
	f.guarded.ServeHTTP(rec, r)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
