package handlers

import (
	"errors"
	"net/http"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/response"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
)

// BudgetHandler handles HTTP requests for spending summary endpoints.
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler with the provided service dependency.
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// Summary handles GET requests for the per-category spending summary over a
// date range. Transfers are excluded from the aggregation.
//
// Endpoint: GET /api/budget/summary?from_date=YYYY-MM-DD&to_date=YYYY-MM-DD
// Response: 200 OK with BudgetSummary
// Error: 400 Bad Request if the dates are missing or malformed, or from_date is after to_date
// Error: 500 Internal Server Error if aggregation fails
func (h *BudgetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromDate, err := repository.ParseTime(query.Get("from_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid from_date", err.Error())
		return
	}
	toDate, err := repository.ParseTime(query.Get("to_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid to_date", err.Error())
		return
	}

	summary, err := h.budgetService.Summary(fromDate, toDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDateRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetBudgetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
