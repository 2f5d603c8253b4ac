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

// RefundHandler handles HTTP requests for refund group and refund item endpoints.
type RefundHandler struct {
	refundService *service.RefundService
}

// NewRefundHandler creates a new RefundHandler with the provided service dependency.
func NewRefundHandler(refundService *service.RefundService) *RefundHandler {
	return &RefundHandler{
		refundService: refundService,
	}
}

// CreateGroup handles POST requests to create a refund group.
//
// Endpoint: POST /api/refund/group
// Request Body: CreateRefundGroupRequest (name, description)
// Response: 201 Created with RefundGroup
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *RefundHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRefundGroupRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRefundGroup(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	group, err := h.refundService.CreateGroup(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create refund group", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, group)
}

// GetGroup handles GET requests to retrieve a refund group and its items.
//
// Endpoint: GET /api/refund/group/{uuid}
// Response: 200 OK with RefundGroupDetail
// Error: 400 Bad Request if group ID is invalid (validated by middleware)
// Error: 404 Not Found if group not found
// Error: 500 Internal Server Error if retrieval fails
func (h *RefundHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "uuid")

	detail, err := h.refundService.GetGroup(groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefundGroupNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRefundGroupNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRefundGroup.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

// UpdateGroup handles PUT requests to update a refund group's name and description.
//
// Endpoint: PUT /api/refund/group/{uuid}
// Request Body: UpdateRefundGroupRequest (name, description)
// Response: 200 OK with RefundGroup
// Error: 400 Bad Request if group ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if group not found
// Error: 500 Internal Server Error if update fails
func (h *RefundHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateRefundGroupRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateRefundGroup(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	group, err := h.refundService.UpdateGroup(r.Context(), groupID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefundGroupNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRefundGroupNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateRefund.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE requests to remove a refund group.
// The group's items survive with their group reference cleared.
//
// Endpoint: DELETE /api/refund/group/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if group ID is invalid (validated by middleware)
// Error: 404 Not Found if group not found
// Error: 500 Internal Server Error if deletion fails
func (h *RefundHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "uuid")

	if err := h.refundService.DeleteGroup(r.Context(), groupID); err != nil {
		if errors.Is(err, apperrors.ErrRefundGroupNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRefundGroupNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete refund group", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// CreateItem handles POST requests to create a single refund item.
// The amount must fit within the remaining capacity of both the expense and
// the income transaction.
//
// Endpoint: POST /api/refund/item
// Request Body: CreateRefundItemRequest (amount, expense_transaction_id, income_transaction_id, refund_group_id)
// Response: 201 Created with RefundItem
// Error: 400 Bad Request if validation fails, a transaction has the wrong role,
// or the amount exceeds remaining capacity
// Error: 404 Not Found if a referenced transaction does not exist
// Error: 500 Internal Server Error if creation fails
func (h *RefundHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRefundItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRefundItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.refundService.CreateItem(r.Context(), req)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT requests to change a refund item's amount.
//
// Endpoint: PUT /api/refund/item/{uuid}
// Request Body: UpdateRefundItemRequest (amount)
// Response: 200 OK with RefundItem
// Error: 400 Bad Request if item ID is invalid (validated by middleware),
// validation fails, or the amount exceeds remaining capacity
// Error: 404 Not Found if item not found
// Error: 500 Internal Server Error if update fails
func (h *RefundHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateRefundItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateRefundItem(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	item, err := h.refundService.UpdateItem(r.Context(), itemID, req)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE requests to remove a refund item.
//
// Endpoint: DELETE /api/refund/item/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if item ID is invalid (validated by middleware)
// Error: 404 Not Found if item not found
// Error: 500 Internal Server Error if deletion fails
func (h *RefundHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "uuid")

	if err := h.refundService.DeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, apperrors.ErrRefundItemNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrRefundItemNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete refund item", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ItemsForTransaction handles GET requests to list refund items touching a
// transaction on either side.
//
// Endpoint: GET /api/refund/item/transaction/{uuid}
// Response: 200 OK with array of RefundItem
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *RefundHandler) ItemsForTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	items, err := h.refundService.GetItemsForTransaction(transactionID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRefundItems.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, items)
}

// respondItemError maps refund item service errors to HTTP statuses.
func (h *RefundHandler) respondItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrRefundItemNotFound):
		response.RespondError(w, http.StatusNotFound, "referenced resource not found", err.Error())
	case errors.Is(err, apperrors.ErrTransactionRole),
		errors.Is(err, apperrors.ErrNoActiveAllocations),
		errors.Is(err, apperrors.ErrAllocationExceedsCapacity):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "failed to process refund item", err.Error())
	}
}
