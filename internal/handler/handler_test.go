package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auth-api/internal/auth"
	"auth-api/internal/middleware"
	"auth-api/internal/session"
	"auth-api/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const cookieName = "_my_session_id"

var excluded = []string{
	"/health/",
	"/users/",
	"/sessions/",
	"/reset_password*",
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := user.NewMemoryStore()
	svc := user.NewService(users)
	lc := session.New(session.NewMemoryStore(), users, cookieName)

	facade := auth.NewFacade(lc, excluded)
	authMiddleware := middleware.NewAuthMiddleware(facade)

	router := gin.New()
	router.Use(middleware.GinRequireAuth(authMiddleware))

	h := NewHandler(svc, lc, cookieName, time.Hour)
	h.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

func doJSON(router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegister(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "user created")

	// missing field
	rec = doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate
	rec = doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com", "password": "other"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email already registered")
}

func TestLogin(t *testing.T) {
	router := newRouter(t)

	doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com", "password": "secret"})

	// missing fields
	rec := doJSON(router, "POST", "/sessions", gin.H{"password": "secret"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown email
	rec = doJSON(router, "POST", "/sessions", gin.H{"email": "who@bar.com", "password": "secret"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// wrong password
	rec = doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// success sets the session cookie
	rec = doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sessionCookie(t, rec))
}

func TestProfile(t *testing.T) {
	router := newRouter(t)

	doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com", "password": "secret"})
	login := doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com", "password": "secret"})
	cookie := sessionCookie(t, login)

	// no session at all
	rec := doJSON(router, "GET", "/profile", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// bogus session
	rec = doJSON(router, "GET", "/profile", nil, &http.Cookie{Name: cookieName, Value: "bogus"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// authenticated
	rec = doJSON(router, "GET", "/profile", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "foo@bar.com")
}

func TestLogout(t *testing.T) {
	router := newRouter(t)

	doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com", "password": "secret"})
	login := doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com", "password": "secret"})
	cookie := sessionCookie(t, login)

	// no cookie
	rec := doJSON(router, "DELETE", "/sessions", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// success
	rec = doJSON(router, "DELETE", "/sessions", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// the session is gone
	rec = doJSON(router, "GET", "/profile", nil, cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// logout again reports 404
	rec = doJSON(router, "DELETE", "/sessions", nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetPassword(t *testing.T) {
	router := newRouter(t)

	doJSON(router, "POST", "/users", gin.H{"email": "foo@bar.com", "password": "secret"})

	// missing email
	rec := doJSON(router, "POST", "/reset_password", gin.H{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown email
	rec = doJSON(router, "POST", "/reset_password", gin.H{"email": "who@bar.com"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// issue a token
	rec = doJSON(router, "POST", "/reset_password", gin.H{"email": "foo@bar.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var issued struct {
		ResetToken string `json:"reset_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))
	require.NotEmpty(t, issued.ResetToken)

	// bad token
	rec = doJSON(router, "PUT", "/reset_password", gin.H{
		"email": "foo@bar.com", "reset_token": "bogus", "new_password": "fresh",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// consume the token
	rec = doJSON(router, "PUT", "/reset_password", gin.H{
		"email": "foo@bar.com", "reset_token": issued.ResetToken, "new_password": "fresh",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// old password rejected, new accepted
	rec = doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com", "password": "secret"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, "POST", "/sessions", gin.H{"email": "foo@bar.com", "password": "fresh"})
	require.Equal(t, http.StatusOK, rec.Code)
}
