package nordigen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client defines the interface for fetching booked transactions from the bank
// data provider (GoCardless Bank Account Data, formerly Nordigen).
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	FetchTransactions(ctx context.Context, token, accountID string, from time.Time) ([]BankTransaction, error)
}

// BankDataClient provides methods for fetching account data from the provider.
// It wraps an HTTP client and the provider base URL.
type BankDataClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewBankDataClient creates a new provider client with default HTTP settings.
func NewBankDataClient(baseURL string) *BankDataClient {
	return &BankDataClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// FetchTransactions retrieves booked transactions for the linked account,
// starting at the given date (inclusive).
func (c *BankDataClient) FetchTransactions(ctx context.Context, token, accountID string, from time.Time) ([]BankTransaction, error) {
	if token == "" || accountID == "" {
		return nil, fmt.Errorf("missing token or account ID")
	}

	queryURL := fmt.Sprintf("%s/accounts/%s/transactions/?date_from=%s",
		c.baseURL, url.PathEscape(accountID), from.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed transactionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return parsed.Transactions.Booked, nil
}
