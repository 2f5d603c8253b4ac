package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
// It also implements refund.TransactionSource for the refund wizard.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	refundRepo      *repository.RefundRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	refundRepo *repository.RefundRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		refundRepo:      refundRepo,
	}
}

// ListTransactions retrieves one page of transactions matching the filter,
// with aggregates computed over the whole filtered set.
func (s *TransactionService) ListTransactions(filter model.TransactionFilter) (model.TransactionPage, error) {
	return s.transactionRepo.ListTransactions(filter)
}

// SearchTransactions provides the refund wizard's candidate listing: one page
// of transactions of the given type matching the search text, plus the total
// match count.
func (s *TransactionService) SearchTransactions(ctx context.Context, txType model.TransactionType, search string, page, perPage int) ([]model.Transaction, int, error) {
	result, err := s.transactionRepo.ListTransactions(model.TransactionFilter{
		Type:      txType,
		Search:    search,
		Page:      page,
		PerPage:   perPage,
		SortBy:    "date",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.Transaction, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, model.Transaction{
			ID:          it.ID,
			AccountID:   it.AccountID,
			Date:        it.Date,
			Description: it.Description,
			Amount:      it.Amount,
			Type:        it.Type,
			Category:    it.Category,
			Source:      it.Source,
		})
	}

	return items, result.Total, nil
}

// GetTransactionsByIDs resolves transactions by ID. Missing IDs are absent
// from the result.
func (s *TransactionService) GetTransactionsByIDs(_ context.Context, ids []string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactionsByIDs(ids)
}

// GetTransaction retrieves a single transaction enriched with its refund
// linkage: the already-refunded total and the items touching it.
func (s *TransactionService) GetTransaction(transactionID string) (model.TransactionResponse, error) {
	tx, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	if tx.ID == "" {
		return model.TransactionResponse{}, apperrors.ErrTransactionNotFound
	}

	items, err := s.refundRepo.GetItemsForTransaction(transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	resp := model.TransactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category,
		Source:      tx.Source,
	}

	for _, item := range items {
		resp.RefundItems = append(resp.RefundItems, model.RefundItemRef{
			ID:            item.ID,
			Amount:        item.Amount,
			RefundGroupID: item.RefundGroupID,
		})
		if item.ExpenseTransactionID == transactionID {
			resp.RefundedAmount += item.Amount
		}
	}

	return resp, nil
}

// CreateTransaction creates a new transaction from the validated request.
// Type and category are decoded strictly; unrecognized values are rejected.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	txType, err := model.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}
	category, err := model.ParseCategory(txType, req.Category)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:          uuid.New().String(),
		AccountID:   req.AccountID,
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        txType,
		Category:    category,
		CreatedAt:   time.Now(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction applies the provided optional fields to an existing
// transaction. Type/category changes are re-decoded against the catalogue.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	tx, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if tx.ID == "" {
		return nil, apperrors.ErrTransactionNotFound
	}

	if req.AccountID != nil {
		tx.AccountID = *req.AccountID
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		tx.Date = date
	}
	if req.Description != nil {
		tx.Description = *req.Description
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Type != nil {
		txType, err := model.ParseTransactionType(*req.Type)
		if err != nil {
			return nil, err
		}
		tx.Type = txType
	}
	if req.Category != nil {
		category, err := model.ParseCategory(tx.Type, *req.Category)
		if err != nil {
			return nil, err
		}
		tx.Category = category
	}

	affected, err := s.transactionRepo.UpdateTransaction(ctx, &tx)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	return &tx, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	affected, err := s.transactionRepo.DeleteTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// BatchDeleteTransactions deletes the given transactions one by one and
// reports the per-ID outcome. Deletion is not all-or-nothing: callers must
// reconcile against exactly the Deleted subset.
func (s *TransactionService) BatchDeleteTransactions(ctx context.Context, ids []string) model.BatchDeleteResult {
	result := model.BatchDeleteResult{
		Deleted: []string{},
		Failed:  map[string]string{},
	}

	for _, id := range ids {
		affected, err := s.transactionRepo.DeleteTransaction(ctx, id)
		switch {
		case err != nil:
			result.Failed[id] = err.Error()
		case affected == 0:
			result.Failed[id] = apperrors.ErrTransactionNotFound.Error()
		default:
			result.Deleted = append(result.Deleted, id)
		}
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}

	return result
}
