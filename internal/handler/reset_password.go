package handler

import (
	"errors"
	"net/http"

	"auth-api/internal/logger"
	"auth-api/internal/user"

	"github.com/gin-gonic/gin"
)

type resetTokenRequest struct {
	Email string `json:"email"`
}

func (h *Handler) ResetPasswordToken(c *gin.Context) {
	var req resetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email missing"})
		return
	}

	token, err := h.users.ResetPasswordToken(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUnknownEmail) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		logger.Error("reset token issue failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":       req.Email,
		"reset_token": token,
	})
}

type updatePasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.ResetToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset_token missing"})
		return
	}
	if req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_password missing"})
		return
	}

	err := h.users.UpdatePassword(c.Request.Context(), req.ResetToken, req.NewPassword)
	if err != nil {
		if errors.Is(err, user.ErrInvalidResetToken) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		logger.Error("password update failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":   req.Email,
		"message": "Password updated",
	})
}
