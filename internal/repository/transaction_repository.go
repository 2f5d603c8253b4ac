package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// It handles filtered, paginated listing plus single-row CRUD, and enriches
// rows with refund linkage where requested.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// sortColumns whitelists the sortable columns. Anything else falls back to date.
var sortColumns = map[string]string{
	"date":        "t.date",
	"amount":      "t.amount",
	"description": "t.description",
	"category":    "t.category",
	"created_at":  "t.created_at",
}

// buildFilterClause translates a TransactionFilter into a WHERE clause and args.
// The clause always starts with "WHERE 1=1" so callers can append freely.
func buildFilterClause(filter model.TransactionFilter) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("WHERE 1=1")

	if filter.Type != "" {
		sb.WriteString(" AND t.type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.AccountID != "" {
		sb.WriteString(" AND t.account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.Category != "" {
		sb.WriteString(" AND t.category = ?")
		args = append(args, filter.Category)
	}
	if len(filter.IDs) > 0 {
		sb.WriteString(" AND t.id IN (" + placeholders(len(filter.IDs)) + ")")
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}
	if filter.Search != "" {
		sb.WriteString(" AND t.description LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if !filter.FromDate.IsZero() {
		sb.WriteString(" AND t.date >= ?")
		args = append(args, filter.FromDate.Format("2006-01-02"))
	}
	if !filter.ToDate.IsZero() {
		sb.WriteString(" AND t.date <= ?")
		args = append(args, filter.ToDate.Format("2006-01-02"))
	}

	return sb.String(), args
}

// ListTransactions retrieves one page of transactions matching the filter,
// together with aggregates (total row count and summed amount) computed over
// the whole filtered set, not just the returned page.
func (s *TransactionRepository) ListTransactions(filter model.TransactionFilter) (model.TransactionPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	where, args := buildFilterClause(filter)

	// Aggregates over the full filtered set.
	var total int
	var totalAmount sql.NullFloat64
	aggregateQuery := `
		SELECT COUNT(*), COALESCE(SUM(t.amount), 0)
		FROM "transaction" t
		` + where
	if err := s.db.QueryRow(aggregateQuery, args...).Scan(&total, &totalAmount); err != nil {
		return model.TransactionPage{}, fmt.Errorf("failed to aggregate transaction table: %w", err)
	}

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "t.date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	listQuery := `
		SELECT
			t.id,
			t.account_id,
			a.name,
			t.date,
			t.description,
			t.amount,
			t.type,
			t.category,
			t.source,
			COALESCE(r.refunded, 0)
		FROM "transaction" t
		JOIN account a ON t.account_id = a.id
		LEFT JOIN (
			SELECT expense_transaction_id, SUM(amount) AS refunded
			FROM refund_item
			GROUP BY expense_transaction_id
		) r ON t.id = r.expense_transaction_id
		` + where + `
		ORDER BY ` + sortColumn + ` ` + sortOrder + `, t.id ASC
		LIMIT ? OFFSET ?
	`
	listArgs := append(append([]any{}, args...), perPage, (page-1)*perPage)

	rows, err := s.db.Query(listQuery, listArgs...)
	if err != nil {
		return model.TransactionPage{}, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	items := []model.TransactionResponse{}

	for rows.Next() {
		var t model.TransactionResponse
		var dateStr string
		var typeStr string
		var source sql.NullString

		err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.AccountName,
			&dateStr,
			&t.Description,
			&t.Amount,
			&typeStr,
			&t.Category,
			&source,
			&t.RefundedAmount,
		)
		if err != nil {
			return model.TransactionPage{}, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return model.TransactionPage{}, fmt.Errorf("failed to parse date: %w", err)
		}
		t.Type, err = model.ParseTransactionType(typeStr)
		if err != nil {
			return model.TransactionPage{}, err
		}
		if source.Valid {
			t.Source = source.String
		}

		items = append(items, t)
	}

	if err = rows.Err(); err != nil {
		return model.TransactionPage{}, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return model.TransactionPage{
		Items:       items,
		Total:       total,
		Count:       len(items),
		Page:        page,
		PerPage:     perPage,
		TotalAmount: totalAmount.Float64,
	}, nil
}

// GetTransactionsByIDs retrieves the transactions with the given IDs.
// Returns an empty slice when ids is empty. Missing IDs are silently absent
// from the result; callers decide whether that is an error.
func (s *TransactionRepository) GetTransactionsByIDs(ids []string) ([]model.Transaction, error) {
	if len(ids) == 0 {
		return []model.Transaction{}, nil
	}

	query := `
		SELECT id, account_id, date, description, amount, type, category, source, created_at
		FROM "transaction"
		WHERE id IN (` + placeholders(len(ids)) + `)
		ORDER BY date ASC
	`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns the zero value (no error) when the transaction does not exist.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	if transactionID == "" {
		return model.Transaction{}, nil
	}

	row := s.db.QueryRow(`
		SELECT id, account_id, date, description, amount, type, category, source, created_at
		FROM "transaction"
		WHERE id = ?
	`, transactionID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, nil
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr, typeStr string
	var source sql.NullString

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&dateStr,
		&t.Description,
		&t.Amount,
		&typeStr,
		&t.Category,
		&source,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.Type, err = model.ParseTransactionType(typeStr)
	if err != nil {
		return model.Transaction{}, err
	}
	if source.Valid {
		t.Source = source.String
	}

	return t, nil
}

// InsertTransaction inserts a new transaction row.
func (s *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO "transaction" (id, account_id, date, description, amount, type, category, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID,
		t.AccountID,
		t.Date.Format("2006-01-02"),
		t.Description,
		t.Amount,
		string(t.Type),
		t.Category,
		t.Source,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites the mutable fields of a transaction row.
// Returns the number of affected rows.
func (s *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE "transaction"
		SET account_id = ?, date = ?, description = ?, amount = ?, type = ?, category = ?, source = ?
		WHERE id = ?
	`,
		t.AccountID,
		t.Date.Format("2006-01-02"),
		t.Description,
		t.Amount,
		string(t.Type),
		t.Category,
		t.Source,
		t.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// DeleteTransaction deletes a transaction by ID. Returns the number of affected rows.
func (s *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// CategoryTotals aggregates signed amounts per category for income and expense
// transactions within the inclusive date range. Transfers are excluded.
func (s *TransactionRepository) CategoryTotals(startDate, endDate time.Time) ([]model.CategoryTotal, error) {
	rows, err := s.db.Query(`
		SELECT category, SUM(amount), COUNT(*)
		FROM "transaction"
		WHERE type IN ('income', 'expense')
		AND date >= ?
		AND date <= ?
		GROUP BY category
		ORDER BY category ASC
	`, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transaction table: %w", err)
	}
	defer rows.Close()

	totals := []model.CategoryTotal{}

	for rows.Next() {
		var ct model.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category totals: %w", err)
		}
		totals = append(totals, ct)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}

// ExistsBySource reports whether a transaction with the given source reference
// already exists. Used by the bank import to skip duplicates.
func (s *TransactionRepository) ExistsBySource(source string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM "transaction" WHERE source = ?`, source).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query transaction table: %w", err)
	}
	return count > 0, nil
}
