package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/service"
)

// Register handles POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful! You can now log in.",
		"user": models.SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	user, rememberToken, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) ||
			errors.Is(err, service.ErrInvalidPassword) ||
			errors.Is(err, service.ErrAccountInactive) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionKeyUserID, user.ID)
	if err := sess.Save(); err != nil {
		h.logger.Error("Failed to save session", logging.Fields{"error": err.Error()})
	}

	if rememberToken != "" {
		maxAge := int(h.config.Session.RememberAge.Seconds())
		c.SetCookie(rememberCookieName, rememberToken, maxAge, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": models.SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		h.logger.Error("Failed to clear session", logging.Fields{"error": err.Error()})
	}

	c.SetCookie(rememberCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// Me handles GET /api/v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	ident := identityFrom(c)
	if ident == nil {
		ident = h.currentIdentity(c)
	}
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), ident.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": models.SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
