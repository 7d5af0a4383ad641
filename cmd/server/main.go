package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/boticario/catalog-proxy/config"
	httpDelivery "github.com/boticario/catalog-proxy/internal/delivery/http"
	"github.com/boticario/catalog-proxy/internal/infrastructure/logging"
	"github.com/boticario/catalog-proxy/internal/infrastructure/tiendanube"
	"github.com/boticario/catalog-proxy/internal/usecase"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	logger.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"store_id":    cfg.Tiendanube.StoreID,
		"store_url":   cfg.Store.BaseURL,
	}).Info("starting catalog proxy")

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("server stopped")
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	// Initialize infrastructure dependencies
	client := tiendanube.NewClient(tiendanube.Options{
		BaseURL:     cfg.Tiendanube.BaseURL,
		StoreID:     cfg.Tiendanube.StoreID,
		AccessToken: cfg.Tiendanube.AccessToken,
		UserAgent:   cfg.Tiendanube.UserAgent,
		Timeout:     cfg.Tiendanube.Timeout,
		RateLimit:   cfg.Tiendanube.RateLimit,
		RateBurst:   cfg.Tiendanube.RateBurst,
	}, logger)

	// Initialize usecase layer
	products := usecase.NewProductService(client, usecase.ProductServiceConfig{
		Scan: usecase.ScanConfig{
			PageSize:       cfg.Search.PageSize,
			MaxPages:       cfg.Search.MaxPages,
			LinkMaxPages:   cfg.Search.LinkMaxPages,
			OverCollect:    cfg.Search.OverCollect,
			EnrichFloor:    cfg.Search.EnrichFloor,
			EarlyExitScore: cfg.Search.EarlyExitScore,
			MinAcceptScore: cfg.Search.MinAcceptScore,
			Locales:        cfg.Store.Locales,
		},
		StoreBaseURL:      cfg.Store.BaseURL,
		CatalogBaseURL:    cfg.Store.CatalogBaseURL,
		ProductPath:       cfg.Store.ProductPath,
		DetailConcurrency: cfg.Search.DetailConcurrency,
	}, logger)
	orders := usecase.NewOrderService(client, logger)
	promos := usecase.NewPromoService(client, usecase.PromoPolicy{
		Policy:    cfg.Promo.Policy,
		Message:   cfg.Promo.Message,
		Code:      cfg.Promo.Code,
		Discount:  cfg.Promo.Discount,
		AppliesTo: cfg.Promo.AppliesTo,
		Instagram: cfg.Promo.Instagram,
	}, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(products, orders, promos, cfg.Search, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", server.Addr).Info("server listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
