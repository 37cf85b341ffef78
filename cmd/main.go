package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"comanda/internal/config"
	"comanda/internal/database"
	"comanda/internal/imagestore"
	"comanda/internal/logger"
	"comanda/internal/messaging"
	"comanda/internal/server"
	"comanda/internal/services/auth"
	"comanda/internal/services/catalog"
	"comanda/internal/services/order"
	"comanda/internal/services/seating"
	"comanda/internal/token"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("comanda")
	requestID := logger.GenerateRequestID()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, requestID); err != nil {
		log.Error("service_failed", requestID, "Service failed", err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", requestID, "Service stopped gracefully", nil)
}

func run(ctx context.Context, cfg *config.App, log *logger.Logger, requestID string) error {
	// Storage.
	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = db.Close(closeCtx)
	}()

	log.Info("db_connected", requestID, "Connected to MongoDB", nil)

	if err := db.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// Broadcast channel.
	conn, err := messaging.New(cfg.RabbitURL, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", requestID, "Connected to RabbitMQ", nil)

	publisher := messaging.NewPublisher(conn, log)

	// Image storage.
	images, err := imagestore.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize image store: %w", err)
	}

	// Services and handlers.
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	accounts := auth.NewRepository(db)
	tables := seating.NewRepository(db)
	products := catalog.NewRepository(db)
	orders := order.NewRepository(db)

	authSvc := auth.NewService(accounts, tokens, log)
	seatingSvc := seating.NewService(tables, log)
	catalogSvc := catalog.NewService(products, images, publisher, log)
	orderSvc := order.NewService(orders, tables, accounts, products, publisher, log, cfg.OrderDeleteRemovesTable)

	srv := server.New(cfg.HTTPAddr, server.Deps{
		Logger:    log,
		Tokens:    tokens,
		Auth:      auth.NewHandler(authSvc),
		Catalog:   catalog.NewHandler(catalogSvc),
		Seating:   seating.NewHandler(seatingSvc),
		Order:     order.NewHandler(orderSvc),
		UploadDir: cfg.UploadDir,
		Health: func(c *gin.Context) bool {
			pingCtx, pingCancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer pingCancel()
			return db.Ping(pingCtx) == nil
		},
	})

	go func() {
		log.Info("service_started", requestID, fmt.Sprintf("comanda listening on %s", cfg.HTTPAddr), map[string]any{
			"addr": cfg.HTTPAddr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", requestID, "HTTP server failed", err, nil)
		}
	}()

	<-ctx.Done()
	log.Info("graceful_shutdown", requestID, "Received shutdown signal", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
