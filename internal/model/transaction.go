package model

import (
	"fmt"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
)

// TransactionType is the kind of a transaction. It is decoded once at the API
// boundary; unrecognized values are rejected rather than defaulted.
type TransactionType string

// Allowed transaction types.
const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// ParseTransactionType decodes a raw type string into a TransactionType.
// Returns apperrors.ErrUnknownTransactionType for anything outside the enum.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TypeIncome, TypeExpense, TypeTransfer:
		return TransactionType(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownTransactionType, raw)
	}
}

// Transaction represents a financial record on an account.
// Amounts are signed: expenses are stored negative, income positive.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Source      string          `json:"source,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// RefundItemRef is a lightweight reference to a refund item attached to a
// transaction in API responses.
type RefundItemRef struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	RefundGroupID string  `json:"refundGroupId,omitempty"`
}

// TransactionResponse represents a transaction with enriched data for API responses.
// Includes the already-refunded total and the refund items touching this transaction.
type TransactionResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"accountId"`
	AccountName    string          `json:"accountName"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	Type           TransactionType `json:"type"`
	Category       string          `json:"category"`
	Source         string          `json:"source,omitempty"`
	RefundedAmount float64         `json:"refundedAmount"`
	RefundItems    []RefundItemRef `json:"refundItems,omitempty"`
}

// TransactionFilter holds the supported listing filters. Zero values mean
// "not filtered". Page numbering starts at 1.
type TransactionFilter struct {
	Type      TransactionType
	PerPage   int
	Page      int
	SortBy    string
	SortOrder string
	Search    string
	IDs       []string
	AccountID string
	Category  string
	FromDate  time.Time
	ToDate    time.Time
}

// TransactionPage is the paginated listing response: the page of items plus
// aggregates over the whole filtered set.
type TransactionPage struct {
	Items       []TransactionResponse `json:"items"`
	Total       int                   `json:"total"`
	Count       int                   `json:"count"`
	Page        int                   `json:"page"`
	PerPage     int                   `json:"per_page"`
	TotalAmount float64               `json:"total_amount"`
}

// BatchDeleteResult reports the per-transaction outcome of a batch deletion.
// Callers must reconcile against exactly the Deleted subset, not assume
// all-or-nothing.
type BatchDeleteResult struct {
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
}
