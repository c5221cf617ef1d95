package handler

import (
	"net/http"

	"auth-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Profile returns the authenticated principal. The auth middleware has
// already rejected the request if no principal resolved, so a missing
// context entry here means the route was wired outside the guard.
func (h *Handler) Profile(c *gin.Context) {
	u, ok := middleware.PrincipalFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	})
}
