package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/response"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// parseTransactionFilter builds a TransactionFilter from the listing query
// parameters. Unknown type values are rejected; everything else defaults.
func parseTransactionFilter(query url.Values) (model.TransactionFilter, error) {
	filter := model.TransactionFilter{
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
		Search:    query.Get("search"),
		AccountID: query.Get("account_id"),
		Category:  query.Get("category"),
	}

	if raw := query.Get("type"); raw != "" {
		txType, err := model.ParseTransactionType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = txType
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, errors.New("page must be a positive integer")
		}
		filter.Page = page
	}
	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 {
			return filter, errors.New("per_page must be a positive integer")
		}
		filter.PerPage = perPage
	}

	// id may repeat: ?id=a&id=b selects exactly those transactions.
	if ids := query["id"]; len(ids) > 0 {
		if err := validation.ValidateUUIDs(ids); err != nil {
			return filter, err
		}
		filter.IDs = ids
	}

	if raw := query.Get("from_date"); raw != "" {
		fromDate, err := repository.ParseTime(raw)
		if err != nil {
			return filter, err
		}
		filter.FromDate = fromDate
	}
	if raw := query.Get("to_date"); raw != "" {
		toDate, err := repository.ParseTime(raw)
		if err != nil {
			return filter, err
		}
		filter.ToDate = toDate
	}

	return filter, nil
}

// ListTransactions handles GET requests to list transactions with filtering,
// sorting and pagination. The response carries the page of items plus the
// total count and total amount over the whole filtered set.
//
// Endpoint: GET /api/transaction
// Query: type, account_id, category, search, id (repeatable), from_date,
// to_date, sort_by, sort_order, page, per_page
// Response: 200 OK with TransactionPage
// Error: 400 Bad Request if a filter parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	page, err := h.transactionService.ListTransactions(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, page)
}

// ListCategories handles GET requests for the category catalogue of a
// transaction type.
//
// Endpoint: GET /api/transaction/categories?type=expense
// Response: 200 OK with array of category names
// Error: 400 Bad Request if the type is missing or unknown
func (h *TransactionHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	txType, err := model.ParseTransactionType(r.URL.Query().Get("type"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid type", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, model.CategoriesFor(txType))
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
// Returns the transaction enriched with its refunded amount and refund items.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (account_id, date, description, amount, type, category)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrUnknownTransactionType) || errors.Is(err, apperrors.ErrUnknownCategory) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if err := h.transactionService.DeleteTransaction(r.Context(), transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// BatchDeleteTransactions handles POST requests to delete multiple transactions.
// Deletion is per-transaction: the response reports which IDs were deleted and
// which failed, and callers must reconcile against the deleted subset.
//
// Endpoint: POST /api/transaction/batch-delete
// Request Body: BatchDeleteTransactionsRequest (ids)
// Response: 200 OK with BatchDeleteResult
// Error: 400 Bad Request if the request body or an ID is invalid
func (h *TransactionHandler) BatchDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BatchDeleteTransactionsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBatchDelete(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result := h.transactionService.BatchDeleteTransactions(r.Context(), req.IDs)

	response.RespondJSON(w, http.StatusOK, result)
}
