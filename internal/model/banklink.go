package model

import "time"

// BankLinkConfig represents the bank data provider (Nordigen/GoCardless)
// integration configuration. The access token is stored encrypted; this model
// never carries the plaintext token out of the repository layer.
type BankLinkConfig struct {
	Configured        bool       `json:"configured"`
	RequisitionID     string     `json:"requisitionId"`
	AccountID         string     `json:"accountId"`
	TokenExpiresAt    *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenWarning      string     `json:"tokenWarning,omitempty"`
	LastSyncDate      *time.Time `json:"lastSyncDate,omitempty"`
	AutoImportEnabled bool       `json:"autoImportEnabled"`
	Enabled           bool       `json:"enabled"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// BankSyncResult reports the outcome of a bank transaction sync run.
type BankSyncResult struct {
	Imported int       `json:"imported"`
	Skipped  int       `json:"skipped"`
	SyncedAt time.Time `json:"syncedAt"`
}
