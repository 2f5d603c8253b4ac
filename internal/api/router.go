package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/handlers"
	custommiddleware "github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/middleware"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/config"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Account     *service.AccountService
	Transaction *service.TransactionService
	Refund      *service.RefundService
	Budget      *service.BudgetService
	BankLink    *service.BankLinkService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svcs.Account)
			r.Get("/", accountHandler.GetAccounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Delete("/", accountHandler.DeleteAccount)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/categories", transactionHandler.ListCategories)
			r.Post("/batch-delete", transactionHandler.BatchDeleteTransactions)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/refund", func(r chi.Router) {
			refundHandler := handlers.NewRefundHandler(svcs.Refund)

			r.Route("/group", func(r chi.Router) {
				r.Post("/", refundHandler.CreateGroup)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", refundHandler.GetGroup)
					r.Put("/", refundHandler.UpdateGroup)
					r.Delete("/", refundHandler.DeleteGroup)
				})
			})

			r.Route("/item", func(r chi.Router) {
				r.Post("/", refundHandler.CreateItem)

				r.Route("/transaction/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", refundHandler.ItemsForTransaction)
				})

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", refundHandler.UpdateItem)
					r.Delete("/", refundHandler.DeleteItem)
				})
			})
		})

		r.Route("/budget", func(r chi.Router) {
			budgetHandler := handlers.NewBudgetHandler(svcs.Budget)
			r.Get("/summary", budgetHandler.Summary)
		})

		r.Route("/banklink", func(r chi.Router) {
			bankLinkHandler := handlers.NewBankLinkHandler(svcs.BankLink)
			r.Get("/config", bankLinkHandler.GetConfig)
			r.Post("/config", bankLinkHandler.Configure)
			r.Post("/sync", bankLinkHandler.Sync)
		})
	})

	return r
}
