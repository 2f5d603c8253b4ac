package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// BankLinkRepository provides data access methods for the bank_link_config
// table. The provider access token is encrypted with fernet before it is
// written and only decrypted on explicit request.
type BankLinkRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewBankLinkRepository creates a new BankLinkRepository. encryptionKey is a
// base64 fernet key; it may be empty, in which case any token read or write
// fails until a key is configured.
func NewBankLinkRepository(db *sql.DB, encryptionKey string) (*BankLinkRepository, error) {
	repo := &BankLinkRepository{db: db}

	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode bank link encryption key: %w", err)
		}
		repo.key = key
	}

	return repo, nil
}

// GetConfig retrieves the bank link configuration without the access token.
// Returns Configured=false (no error) when no configuration row exists.
func (s *BankLinkRepository) GetConfig() (*model.BankLinkConfig, error) {
	var cfg model.BankLinkConfig
	var createdAtStr, updatedAtStr string
	var tokenExpiresAt, lastSync sql.NullString

	err := s.db.QueryRow(`
		SELECT requisition_id, account_id, token_expires_at, last_sync_date,
		       auto_import_enabled, enabled, created_at, updated_at
		FROM bank_link_config
		LIMIT 1
	`).Scan(
		&cfg.RequisitionID,
		&cfg.AccountID,
		&tokenExpiresAt,
		&lastSync,
		&cfg.AutoImportEnabled,
		&cfg.Enabled,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return &model.BankLinkConfig{Configured: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan bank_link_config results: %w", err)
	}

	cfg.Configured = true

	if tokenExpiresAt.Valid {
		t, err := ParseTime(tokenExpiresAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		cfg.TokenExpiresAt = &t
	}
	if lastSync.Valid {
		t, err := ParseTime(lastSync.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		cfg.LastSyncDate = &t
	}
	cfg.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	cfg.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	return &cfg, nil
}

// SaveConfig replaces the bank link configuration. The access token is
// encrypted before storage.
func (s *BankLinkRepository) SaveConfig(ctx context.Context, cfg *model.BankLinkConfig, accessToken string) error {
	if s.key == nil {
		return fmt.Errorf("bank link encryption key is not configured")
	}

	encrypted, err := fernet.EncryptAndSign([]byte(accessToken), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	var tokenExpiresAt any
	if cfg.TokenExpiresAt != nil {
		tokenExpiresAt = cfg.TokenExpiresAt.UTC().Format(time.RFC3339)
	}

	// Single-row table: replace any previous link.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_link_config`); err != nil {
		return fmt.Errorf("failed to clear bank_link_config: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO bank_link_config (id, requisition_id, account_id, access_token, token_expires_at,
		                              auto_import_enabled, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.New().String(),
		cfg.RequisitionID,
		cfg.AccountID,
		string(encrypted),
		tokenExpiresAt,
		cfg.AutoImportEnabled,
		cfg.Enabled,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bank_link_config: %w", err)
	}

	return tx.Commit()
}

// AccessToken decrypts and returns the stored provider access token.
func (s *BankLinkRepository) AccessToken() (string, error) {
	if s.key == nil {
		return "", fmt.Errorf("bank link encryption key is not configured")
	}

	var encrypted string
	err := s.db.QueryRow(`SELECT access_token FROM bank_link_config LIMIT 1`).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", sql.ErrNoRows
	}
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(encrypted), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt access token")
	}

	return string(plaintext), nil
}

// MarkSynced records the completion time of a sync run.
func (s *BankLinkRepository) MarkSynced(ctx context.Context, syncedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE bank_link_config SET last_sync_date = ?, updated_at = ?
	`, syncedAt.UTC().Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to update bank_link_config: %w", err)
	}
	return nil
}
