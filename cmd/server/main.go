package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"guardian/server/config"
	"guardian/server/internal/analytics"
	"guardian/server/internal/api"
	"guardian/server/internal/inference"
	"guardian/server/internal/ledger"
	"guardian/server/internal/models"
	"guardian/server/internal/repository"
	"guardian/server/internal/valuation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	gin.SetMode(cfg.Server.GinMode)

	// Initialize storage
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	store, err := repository.NewStore(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	logger.Info("Running database migrations...")
	if err := store.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Load valuation rate tables
	rates, err := config.LoadRates(cfg.RatesPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load valuation rates")
	}
	valuationEngine := valuation.NewEngine(rates)

	// Select the ledger implementation once at startup
	var ledgerService ledger.Ledger
	switch cfg.Ledger.Mode {
	case "relay":
		ledgerService = ledger.NewClient(cfg.Ledger.RelayURL, cfg.Ledger.RelayAPIKey, logger)
		logger.WithField("relay_url", cfg.Ledger.RelayURL).Info("Using ledger relay")
	default:
		ledgerService = ledger.NewStub(cfg.Ledger.Account)
		logger.Info("Using stub ledger")
	}

	// Ledger submissions run off a queue so listing creation never blocks
	// on the relay. Receipts are written back to the listing record.
	listings := store.Listings()
	queue := ledger.NewSubmissionQueue(cfg.Ledger.QueueSize, ledgerService, logger)
	queue.Subscribe(func(l *models.Listing, receipt *ledger.Receipt) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		l.LedgerTxID = receipt.TransactionID
		return listings.Save(ctx, l)
	})
	queue.Start()
	defer queue.Close()

	// Inference analyzer: real client when a key is configured
	var analyzer inference.Analyzer
	if cfg.Inference.APIKey != "" {
		analyzer = inference.NewOpenAIAnalyzer(
			cfg.Inference.APIBase,
			cfg.Inference.APIKey,
			cfg.Inference.Model,
			time.Duration(cfg.Inference.Timeout)*time.Second,
		)
		logger.WithField("model", cfg.Inference.Model).Info("Inference analyzer enabled")
	} else {
		analyzer = inference.NewStubAnalyzer()
		logger.Info("Inference API key not set, using stub analyzer")
	}

	handler := api.NewHandler(
		listings,
		store.Users(),
		valuationEngine,
		analytics.NewService(valuationEngine),
		ledgerService,
		queue,
		analyzer,
		logger,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	api.SetupRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
