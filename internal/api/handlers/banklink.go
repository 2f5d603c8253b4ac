package handlers

import (
	"errors"
	"net/http"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/response"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/validation"
)

// BankLinkHandler handles HTTP requests for bank data provider integration endpoints.
type BankLinkHandler struct {
	bankLinkService *service.BankLinkService
}

// NewBankLinkHandler creates a new BankLinkHandler with the provided service dependency.
func NewBankLinkHandler(bankLinkService *service.BankLinkService) *BankLinkHandler {
	return &BankLinkHandler{
		bankLinkService: bankLinkService,
	}
}

// GetConfig handles GET requests to retrieve the bank link configuration.
// The access token is never returned; a warning is attached when the token
// expires within 30 days.
//
// Endpoint: GET /api/banklink/config
// Response: 200 OK with BankLinkConfig
// Error: 500 Internal Server Error if retrieval fails
func (h *BankLinkHandler) GetConfig(w http.ResponseWriter, _ *http.Request) {
	config, err := h.bankLinkService.GetConfig()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBankLink.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, config)
}

// Configure handles POST requests to set up or replace the bank link.
//
// Endpoint: POST /api/banklink/config
// Request Body: ConfigureBankLinkRequest (requisition_id, account_id, access_token, ...)
// Response: 200 OK with the stored BankLinkConfig
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if storage fails
func (h *BankLinkHandler) Configure(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ConfigureBankLinkRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateConfigureBankLink(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	config, err := h.bankLinkService.Configure(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to configure bank link", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, config)
}

// Sync handles POST requests to import booked bank transactions into an account.
//
// Endpoint: POST /api/banklink/sync
// Request Body: SyncBankLinkRequest (account_id)
// Response: 200 OK with BankSyncResult
// Error: 400 Bad Request if the account ID is invalid or the link is not configured
// Error: 502 Bad Gateway if the provider request fails
// Error: 500 Internal Server Error if import fails
func (h *BankLinkHandler) Sync(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SyncBankLinkRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUID(req.AccountID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.bankLinkService.Sync(r.Context(), req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrBankLinkNotConfigured) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrBankLinkNotConfigured.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrFailedToSyncBankLink) {
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToSyncBankLink.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to import bank transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
