package request

type CreateTransactionRequest struct {
	AccountID   string  `json:"account_id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
}

type UpdateTransactionRequest struct {
	AccountID   *string  `json:"account_id,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

type BatchDeleteTransactionsRequest struct {
	IDs []string `json:"ids"`
}
