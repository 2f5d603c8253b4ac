package model

import "time"

// RefundGroup is an optional named container aggregating multiple refund items
// that together reimburse one or more expenses from one or more income sources.
type RefundGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// RefundItem links one expense transaction to one income transaction for a
// specific reimbursed amount. RefundGroupID is empty for standalone items.
type RefundItem struct {
	ID                   string    `json:"id"`
	Amount               float64   `json:"amount"`
	Description          string    `json:"description,omitempty"`
	ExpenseTransactionID string    `json:"expense_transaction_id"`
	IncomeTransactionID  string    `json:"income_transaction_id"`
	RefundGroupID        string    `json:"refund_group_id,omitempty"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
}

// RefundGroupDetail is a group with its items, for API responses.
type RefundGroupDetail struct {
	RefundGroup
	Items []RefundItem `json:"items"`
}
