package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/config"
	"github.com/storefin/backend/internal/infrastructure/persistence"
	"github.com/storefin/backend/internal/infrastructure/persistence/postgres"
	"github.com/storefin/backend/internal/infrastructure/stripe"
	"github.com/storefin/backend/internal/interfaces/rest/handlers"
	"github.com/storefin/backend/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting storefin api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := persistence.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	orderRepo := postgres.NewOrderRepository(db)
	productRepo := postgres.NewProductRepository(db)
	voucherRepo := postgres.NewVoucherRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	coordinator := postgres.NewTransactionCoordinator(db)

	gateway := stripe.NewClient(cfg.Stripe)

	orderService := services.NewOrderService(orderRepo, productRepo, voucherRepo, gateway, coordinator, logger)
	catalogService := services.NewCatalogService(productRepo)
	transactionService := services.NewTransactionService(transactionRepo, logger)
	reportService := services.NewReportService(reportRepo)
	checkoutService := services.NewCheckoutService(orderRepo, productRepo, gateway, cfg.Stripe.FrontendURL, logger)

	h := handlers.NewHandlers(
		orderService,
		catalogService,
		transactionService,
		reportService,
		checkoutService,
	)

	apiMux := http.NewServeMux()
	h.RegisterRoutes(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/v1/", middleware.Auth(cfg.Auth.JWTSecret)(apiMux))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	handler := middleware.Recovery(logger)(http.Handler(mux))
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
