package handlers

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/service"
)

const (
	sessionKeyUserID = "user_id"
	sessionKeyCartID = "cart_id"

	rememberCookieName = "remember_token"
)

// currentIdentity returns the authenticated caller, or nil for guests.
// A valid remember cookie restores an expired session transparently.
func (h *Handlers) currentIdentity(c *gin.Context) *service.Identity {
	sess := sessions.Default(c)

	if userID, ok := sess.Get(sessionKeyUserID).(int64); ok && userID > 0 {
		return &service.Identity{UserID: userID, IP: c.ClientIP()}
	}

	token, err := c.Cookie(rememberCookieName)
	if err != nil || token == "" {
		return nil
	}

	user, err := h.authService.ResolveRememberToken(c.Request.Context(), token)
	if err != nil {
		return nil
	}

	sess.Set(sessionKeyUserID, user.ID)
	_ = sess.Save()

	return &service.Identity{UserID: user.ID, IP: c.ClientIP()}
}

// cartID returns the session's cart key, creating one on first use.
func (h *Handlers) cartID(c *gin.Context) (string, error) {
	sess := sessions.Default(c)

	if id, ok := sess.Get(sessionKeyCartID).(string); ok && id != "" {
		return id, nil
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	id := hex.EncodeToString(buf)

	sess.Set(sessionKeyCartID, id)
	_ = sess.Save()

	return id, nil
}

// RequireAuth aborts with 401 unless the caller is logged in. The
// identity is stashed on the gin context for the handler.
func (h *Handlers) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := h.currentIdentity(c)
		if ident == nil {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}
		c.Set("identity", ident)
		c.Next()
	}
}

func identityFrom(c *gin.Context) *service.Identity {
	if v, exists := c.Get("identity"); exists {
		if ident, ok := v.(*service.Identity); ok {
			return ident
		}
	}
	return nil
}
