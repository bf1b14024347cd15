package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	key, err := h.cartID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	cart := h.carts.Load(c.Request.Context(), key)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart.Lines,
		"total":   cart.Total(),
	})
}

// AddCartItem handles POST /api/v1/cart/items
func (h *Handlers) AddCartItem(c *gin.Context) {
	var line models.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	if line.Name == "" || line.Price <= 0 || line.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Item name, price and quantity are required",
		})
		return
	}

	key, err := h.cartID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	cart := h.carts.Load(c.Request.Context(), key)
	cart.Add(line)
	h.carts.Save(c.Request.Context(), key, cart)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart.Lines,
		"total":   cart.Total(),
	})
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item id"})
		return
	}

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	key, err := h.cartID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	cart := h.carts.Load(c.Request.Context(), key)
	cart.SetQuantity(id, req.Quantity)
	h.carts.Save(c.Request.Context(), key, cart)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart.Lines,
		"total":   cart.Total(),
	})
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:id
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item id"})
		return
	}

	key, err := h.cartID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	cart := h.carts.Load(c.Request.Context(), key)
	cart.Remove(id)
	h.carts.Save(c.Request.Context(), key, cart)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart.Lines,
		"total":   cart.Total(),
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	key, err := h.cartID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	h.carts.Clear(c.Request.Context(), key)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    []models.CartLine{},
		"total":   0,
	})
}
