package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMarketPrices handles GET /api/v1/market/prices
func (h *Handlers) GetMarketPrices(c *gin.Context) {
	prices, err := h.marketService.LatestPrices(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"prices":  prices,
	})
}

// GetWeather handles GET /api/v1/market/weather
func (h *Handlers) GetWeather(c *gin.Context) {
	location := c.DefaultQuery("location", "morogoro")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"weather": h.marketService.Weather(location),
	})
}

// GetStatistics handles GET /api/v1/market/statistics
func (h *Handlers) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"statistics": h.marketService.Statistics(c.Request.Context()),
	})
}

// GetOpportunities handles GET /api/v1/market/opportunities
func (h *Handlers) GetOpportunities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"opportunities": h.marketService.Opportunities(),
	})
}
