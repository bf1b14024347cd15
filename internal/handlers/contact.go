package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// SubmitContact handles POST /api/v1/contact
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	ident := h.currentIdentity(c)

	msg, err := h.contactService.Submit(c.Request.Context(), &req, ident)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Thank you for your message! We will get back to you soon.",
		"category": msg.Category,
	})
}
