package model

import "time"

// Account represents a financial account (checking, savings, investment)
// that owns transactions.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ValidAccountType contains the allowed account type values.
var ValidAccountType = map[string]bool{
	"checking": true, "savings": true, "investment": true, "loan": true,
}
