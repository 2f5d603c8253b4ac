package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves all accounts ordered by name.
func (s *AccountRepository) GetAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(`
		SELECT id, name, type, currency, created_at
		FROM account
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		var a model.Account
		var createdAtStr string

		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Currency, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}
		a.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single account by ID.
// Returns the zero value (no error) when the account does not exist.
func (s *AccountRepository) GetAccount(accountID string) (model.Account, error) {
	var a model.Account
	var createdAtStr string

	err := s.db.QueryRow(`
		SELECT id, name, type, currency, created_at
		FROM account
		WHERE id = ?
	`, accountID).Scan(&a.ID, &a.Name, &a.Type, &a.Currency, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.Account{}, nil
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to scan account table results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return a, nil
}

// InsertAccount inserts a new account row.
func (s *AccountRepository) InsertAccount(ctx context.Context, account *model.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, name, type, currency, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, account.ID, account.Name, account.Type, account.Currency, account.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// DeleteAccount deletes an account by ID. Returns the number of affected rows.
func (s *AccountRepository) DeleteAccount(ctx context.Context, accountID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM account WHERE id = ?`, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
