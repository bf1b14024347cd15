package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/cart"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/clients"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/events"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/handlers"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/repository"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/server"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger("agrisolutions-api")

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	orderRepo := repository.NewPostgresOrderRepository(db, logger)
	userRepo := repository.NewPostgresUserRepository(db, logger)
	contactRepo := repository.NewPostgresContactRepository(db, logger)
	marketRepo := repository.NewPostgresMarketRepository(db, logger)
	activityLog := repository.NewPostgresActivityLog(db, logger)

	marketCache := repository.NewRedisMarketCache(cfg.Redis)
	cartStore := cart.NewStore(cfg.Redis)

	var mailer service.Mailer
	if cfg.Features.EnableMailDispatch {
		mailer = clients.NewHTTPMailerClient(cfg.Mailer, logger)
	} else {
		mailer = clients.NewLogMailerClient(logger)
	}

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	orderService := service.NewOrderService(orderRepo, mailer, eventPublisher, activityLog, cfg)
	authService := service.NewAuthService(userRepo, mailer, eventPublisher, activityLog, cfg)
	contactService := service.NewContactService(contactRepo, mailer, eventPublisher, activityLog, cfg)
	marketService := service.NewMarketService(marketRepo, marketCache, userRepo, orderRepo, cfg)

	h := handlers.NewHandlers(orderService, authService, contactService, marketService, cartStore, cfg)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":          cfg.Server.Port,
			"order_events":  cfg.Features.EnableOrderEvents,
			"mail_dispatch": cfg.Features.EnableMailDispatch,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	eventConsumer := events.NewKafkaConsumer(cfg.Kafka, orderService, logger)
	go func() {
		if err := eventConsumer.Start(context.Background()); err != nil {
			logger.Error("Event consumer failed", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eventConsumer.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited", nil)
}

func initDatabase(cfg *config.Config, logger *logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
