package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/handlers"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/metrics"
)

// Server wraps the gin router and the underlying http.Server so the
// process can shut down gracefully.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

// New creates the HTTP server and registers all routes.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
	})
	router.Use(sessions.Sessions(cfg.Session.CookieName, store))
	router.Use(metrics.Middleware())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/orders", s.handlers.PlaceOrder)
		v1.GET("/orders/track/:number", s.handlers.TrackOrder)
		v1.GET("/orders", s.handlers.RequireAuth(), s.handlers.GetMyOrders)

		v1.POST("/auth/register", s.handlers.Register)
		v1.POST("/auth/login", s.handlers.Login)
		v1.POST("/auth/logout", s.handlers.Logout)
		v1.GET("/auth/me", s.handlers.Me)

		v1.POST("/contact", s.handlers.SubmitContact)

		v1.GET("/cart", s.handlers.GetCart)
		v1.POST("/cart/items", s.handlers.AddCartItem)
		v1.PATCH("/cart/items/:id", s.handlers.UpdateCartItem)
		v1.DELETE("/cart/items/:id", s.handlers.RemoveCartItem)
		v1.DELETE("/cart", s.handlers.ClearCart)

		v1.GET("/market/prices", s.handlers.GetMarketPrices)
		v1.GET("/market/weather", s.handlers.GetWeather)
		v1.GET("/market/statistics", s.handlers.GetStatistics)
		v1.GET("/market/opportunities", s.handlers.GetOpportunities)
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
