package request

type CreateRefundGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateRefundGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateRefundItemRequest struct {
	Amount               float64 `json:"amount"`
	Description          string  `json:"description,omitempty"`
	ExpenseTransactionID string  `json:"expense_transaction_id"`
	IncomeTransactionID  string  `json:"income_transaction_id"`
	RefundGroupID        string  `json:"refund_group_id,omitempty"`
}

type UpdateRefundItemRequest struct {
	Amount float64 `json:"amount"`
}
