package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/cart"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/service"
)

// Handlers holds all HTTP handlers for the marketplace API.
type Handlers struct {
	orderService   *service.OrderService
	authService    *service.AuthService
	contactService *service.ContactService
	marketService  *service.MarketService
	carts          *cart.Store
	config         *config.Config
	logger         *logging.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	orderService *service.OrderService,
	authService *service.AuthService,
	contactService *service.ContactService,
	marketService *service.MarketService,
	carts *cart.Store,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		orderService:   orderService,
		authService:    authService,
		contactService: contactService,
		marketService:  marketService,
		carts:          carts,
		config:         cfg,
		logger:         logging.NewLogger("handlers"),
	}
}

// handleError maps service errors to the wire format. Validation failures
// surface their message; storage failures are logged server-side and
// return a generic message so internals never leak.
func handleError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "not found",
		})
		return
	}

	if apperrors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "An error occurred while processing your request. Please try again.",
	})
}
