package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/config"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/database"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/nordigen"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	bankLinkRepo, err := repository.NewBankLinkRepository(db, cfg.BankLink.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialize bank link repository: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db)
	accountService := service.NewAccountService(accountRepo)
	transactionService := service.NewTransactionService(
		transactionRepo,
		refundRepo,
	)
	refundService := service.NewRefundService(
		refundRepo,
		transactionRepo,
	)
	budgetService := service.NewBudgetService(transactionRepo)
	bankLinkService := service.NewBankLinkService(
		bankLinkRepo,
		transactionRepo,
		nordigen.NewBankDataClient(cfg.BankLink.BaseURL),
	)

	// Scheduled bank import, when configured
	var scheduler *cron.Cron
	if cfg.BankLink.SyncSchedule != "" && cfg.BankLink.SyncAccountID != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.BankLink.SyncSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			bankLinkService.AutoSync(ctx, cfg.BankLink.SyncAccountID)
		})
		if err != nil {
			log.Fatalf("Failed to schedule bank import: %v", err)
		}
		scheduler.Start()
		log.Printf("Scheduled bank import: %s", cfg.BankLink.SyncSchedule)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Account:     accountService,
		Transaction: transactionService,
		Refund:      refundService,
		Budget:      budgetService,
		BankLink:    bankLinkService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
