package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/response"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/validation"
)

// AccountHandler handles HTTP requests for account endpoints.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetAccounts handles GET requests to retrieve all accounts.
//
// Endpoint: GET /api/account
// Response: 200 OK with array of Account
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, _ *http.Request) {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET requests to retrieve a single account by ID.
//
// Endpoint: GET /api/account/{uuid}
// Response: 200 OK with Account
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccount.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// CreateAccount handles POST requests to create a new account.
//
// Endpoint: POST /api/account
// Request Body: CreateAccountRequest (name, type, currency)
// Response: 201 Created with Account
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// DeleteAccount handles DELETE requests to remove an account.
//
// Endpoint: DELETE /api/account/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if account ID is invalid (validated by middleware)
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if deletion fails
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	if err := h.accountService.DeleteAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
