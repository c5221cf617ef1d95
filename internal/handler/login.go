package handler

import (
	"errors"
	"net/http"
	"time"

	"auth-api/internal/logger"
	"auth-api/internal/session"
	"auth-api/internal/user"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email missing"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password missing"})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUnknownEmail):
			c.JSON(http.StatusNotFound, gin.H{"error": "no user found for this email"})
		case errors.Is(err, user.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		default:
			logger.Error("authentication failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	sessionID, err := h.sessions.CreateSession(c.Request.Context(), u.ID)
	if err != nil {
		logger.Error("session create failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	var expiresAt time.Time
	if h.sessionTTL > 0 {
		expiresAt = time.Now().Add(h.sessionTTL)
	}

	session.SetCookie(c.Writer, h.cookieName, sessionID, expiresAt, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{
		"id":    u.ID,
		"email": u.Email,
	})
}
