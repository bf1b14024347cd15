package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// PlaceOrder handles POST /api/v1/orders
func (h *Handlers) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	// Carts submitted inline win; otherwise fall back to the session cart.
	sessionCartKey := ""
	if len(req.Cart) == 0 {
		key, err := h.cartID(c)
		if err != nil {
			handleError(c, err)
			return
		}
		sessionCart := h.carts.Load(c.Request.Context(), key)
		req.Cart = sessionCart.Lines
		sessionCartKey = key
	}

	ident := h.currentIdentity(c)

	result, err := h.orderService.PlaceOrder(c.Request.Context(), &req, ident)
	if err != nil {
		handleError(c, err)
		return
	}

	if sessionCartKey != "" {
		h.carts.Clear(c.Request.Context(), sessionCartKey)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully! You will receive a confirmation email shortly.",
		"order":   result,
	})
}

// TrackOrder handles GET /api/v1/orders/track/:number
func (h *Handlers) TrackOrder(c *gin.Context) {
	number := c.Param("number")

	order, err := h.orderService.TrackOrder(c.Request.Context(), number)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// GetMyOrders handles GET /api/v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	ident := identityFrom(c)

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), ident.UserID, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}
