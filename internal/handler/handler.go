package handler

import (
	"context"
	"net/http"
	"time"

	"auth-api/internal/logger"
	"auth-api/internal/session"
	"auth-api/internal/user"

	"github.com/gin-gonic/gin"
)

// SessionManager is the slice of the session lifecycle the routes need.
// It is nil when the bound strategy is not session-based, in which case
// the session routes are not registered.
type SessionManager interface {
	CreateSession(ctx context.Context, userID string) (string, error)
	DestroySession(ctx context.Context, r *http.Request) (bool, error)
}

type Handler struct {
	users      *user.Service
	sessions   SessionManager
	cookieName string
	sessionTTL time.Duration
	cookieOpts session.CookieOptions
}

func NewHandler(
	users *user.Service,
	sessions SessionManager,
	cookieName string,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		users:      users,
		sessions:   sessions,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
		cookieOpts: session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/users", h.Register)
	r.POST("/reset_password", h.ResetPasswordToken)
	r.PUT("/reset_password", h.UpdatePassword)
	r.GET("/profile", h.Profile)

	if h.sessions != nil {
		r.POST("/sessions", h.Login)
		r.DELETE("/sessions", h.Logout)
	}
}

func (h *Handler) Logout(c *gin.Context) {
	destroyed, err := h.sessions.DestroySession(c.Request.Context(), c.Request)
	if err != nil {
		logger.Error("session destroy failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	if !destroyed {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	session.ClearCookie(c.Writer, h.cookieName, h.cookieOpts)
	c.JSON(http.StatusOK, gin.H{})
}
