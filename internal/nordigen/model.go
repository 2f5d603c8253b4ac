package nordigen

// transactionsResponse mirrors the provider's account transactions payload.
type transactionsResponse struct {
	Transactions struct {
		Booked []BankTransaction `json:"booked"`
	} `json:"transactions"`
}

// Amount is the provider's {amount, currency} pair; amount is a decimal string.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// BankTransaction is one booked transaction as reported by the bank data provider.
type BankTransaction struct {
	TransactionID     string `json:"transactionId"`
	BookingDate       string `json:"bookingDate"`
	TransactionAmount Amount `json:"transactionAmount"`
	RemittanceInfo    string `json:"remittanceInformationUnstructured"`
}
