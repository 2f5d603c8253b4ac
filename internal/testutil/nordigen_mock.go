package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/nordigen"
)

// MockBankClient is a mock implementation of nordigen.Client for testing.
// It returns predefined test data instead of calling the provider API.
type MockBankClient struct {
	// MockTransactions is the transaction list to return from FetchTransactions
	MockTransactions []nordigen.BankTransaction
	// MockError is the error to return from FetchTransactions
	MockError error
	// FetchCount tracks how many times FetchTransactions was called
	FetchCount int
	// LastFrom records the from date of the most recent call
	LastFrom time.Time
}

// NewMockBankClient creates a new mock bank client with default test data.
// The default data includes three booked transactions: two expenses and one income.
func NewMockBankClient() *MockBankClient {
	return &MockBankClient{
		MockTransactions: CreateMockBankTransactions(3),
	}
}

// FetchTransactions mocks the provider transaction listing.
// It returns the configured MockTransactions and MockError.
func (m *MockBankClient) FetchTransactions(_ context.Context, _, _ string, from time.Time) ([]nordigen.BankTransaction, error) {
	m.FetchCount++
	m.LastFrom = from
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockTransactions, nil
}

// WithError configures the mock to return the specified error.
func (m *MockBankClient) WithError(err error) *MockBankClient {
	m.MockError = err
	return m
}

// WithTransactions configures the mock to return the specified transactions.
func (m *MockBankClient) WithTransactions(txs []nordigen.BankTransaction) *MockBankClient {
	m.MockTransactions = txs
	return m
}

// CreateMockBankTransactions builds n booked transactions with alternating
// signs, dated backwards one day apart from today.
func CreateMockBankTransactions(n int) []nordigen.BankTransaction {
	txs := make([]nordigen.BankTransaction, 0, n)
	for i := 0; i < n; i++ {
		amount := fmt.Sprintf("-%d.50", 10+i)
		if i%2 == 1 {
			amount = fmt.Sprintf("%d.00", 100+i)
		}
		txs = append(txs, nordigen.BankTransaction{
			TransactionID: fmt.Sprintf("bank-tx-%03d", i+1),
			BookingDate:   time.Now().AddDate(0, 0, -i).Format("2006-01-02"),
			TransactionAmount: nordigen.Amount{
				Amount:   amount,
				Currency: "EUR",
			},
			RemittanceInfo: fmt.Sprintf("Mock bank transaction %d", i+1),
		})
	}
	return txs
}
