package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// RefundRepository provides data access methods for the refund_group and
// refund_item tables.
type RefundRepository struct {
	db *sql.DB
}

// NewRefundRepository creates a new RefundRepository with the provided database connection.
func NewRefundRepository(db *sql.DB) *RefundRepository {
	return &RefundRepository{db: db}
}

// InsertGroup inserts a new refund group row.
func (s *RefundRepository) InsertGroup(ctx context.Context, group *model.RefundGroup) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refund_group (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`, group.ID, group.Name, group.Description, group.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert refund group: %w", err)
	}
	return nil
}

// UpdateGroup overwrites a refund group's name and description.
// Returns the number of affected rows.
func (s *RefundRepository) UpdateGroup(ctx context.Context, group *model.RefundGroup) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE refund_group SET name = ?, description = ? WHERE id = ?
	`, group.Name, group.Description, group.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update refund group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// GetGroup retrieves a refund group by ID.
// Returns the zero value (no error) when the group does not exist.
func (s *RefundRepository) GetGroup(groupID string) (model.RefundGroup, error) {
	var g model.RefundGroup
	var createdAtStr string
	var description sql.NullString

	err := s.db.QueryRow(`
		SELECT id, name, description, created_at
		FROM refund_group
		WHERE id = ?
	`, groupID).Scan(&g.ID, &g.Name, &description, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.RefundGroup{}, nil
	}
	if err != nil {
		return model.RefundGroup{}, fmt.Errorf("failed to scan refund group results: %w", err)
	}

	if description.Valid {
		g.Description = description.String
	}
	g.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.RefundGroup{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return g, nil
}

// DeleteGroup deletes a refund group by ID. Items keep existing with a NULL
// group reference (ON DELETE SET NULL). Returns the number of affected rows.
func (s *RefundRepository) DeleteGroup(ctx context.Context, groupID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM refund_group WHERE id = ?`, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refund group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// InsertItem inserts a new refund item row.
func (s *RefundRepository) InsertItem(ctx context.Context, item *model.RefundItem) error {
	var groupID any
	if item.RefundGroupID != "" {
		groupID = item.RefundGroupID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refund_item (id, amount, description, expense_transaction_id, income_transaction_id, refund_group_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		item.Amount,
		item.Description,
		item.ExpenseTransactionID,
		item.IncomeTransactionID,
		groupID,
		item.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert refund item: %w", err)
	}
	return nil
}

// UpdateItemAmount updates the amount and description of a refund item.
// Returns the number of affected rows.
func (s *RefundRepository) UpdateItemAmount(ctx context.Context, itemID string, amount float64, description string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE refund_item SET amount = ?, description = ? WHERE id = ?
	`, amount, description, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to update refund item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// DeleteItem deletes a refund item by ID. Returns the number of affected rows.
func (s *RefundRepository) DeleteItem(ctx context.Context, itemID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM refund_item WHERE id = ?`, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refund item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// GetItem retrieves a refund item by ID.
// Returns the zero value (no error) when the item does not exist.
func (s *RefundRepository) GetItem(itemID string) (model.RefundItem, error) {
	row := s.db.QueryRow(`
		SELECT id, amount, description, expense_transaction_id, income_transaction_id, refund_group_id, created_at
		FROM refund_item
		WHERE id = ?
	`, itemID)

	item, err := scanRefundItem(row)
	if err == sql.ErrNoRows {
		return model.RefundItem{}, nil
	}
	if err != nil {
		return model.RefundItem{}, err
	}

	return item, nil
}

// GetItemsByGroup retrieves all refund items belonging to a group, oldest first.
func (s *RefundRepository) GetItemsByGroup(groupID string) ([]model.RefundItem, error) {
	return s.queryItems(`
		SELECT id, amount, description, expense_transaction_id, income_transaction_id, refund_group_id, created_at
		FROM refund_item
		WHERE refund_group_id = ?
		ORDER BY created_at ASC
	`, groupID)
}

// GetItemsForTransaction retrieves all refund items referencing the given
// transaction on either the expense or the income side.
func (s *RefundRepository) GetItemsForTransaction(transactionID string) ([]model.RefundItem, error) {
	return s.queryItems(`
		SELECT id, amount, description, expense_transaction_id, income_transaction_id, refund_group_id, created_at
		FROM refund_item
		WHERE expense_transaction_id = ? OR income_transaction_id = ?
		ORDER BY created_at ASC
	`, transactionID, transactionID)
}

func (s *RefundRepository) queryItems(query string, args ...any) ([]model.RefundItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query refund_item table: %w", err)
	}
	defer rows.Close()

	items := []model.RefundItem{}

	for rows.Next() {
		item, err := scanRefundItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refund_item table: %w", err)
	}

	return items, nil
}

func scanRefundItem(row scanner) (model.RefundItem, error) {
	var item model.RefundItem
	var description, groupID sql.NullString
	var createdAtStr string

	err := row.Scan(
		&item.ID,
		&item.Amount,
		&description,
		&item.ExpenseTransactionID,
		&item.IncomeTransactionID,
		&groupID,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.RefundItem{}, err
	}
	if err != nil {
		return model.RefundItem{}, fmt.Errorf("failed to scan refund_item results: %w", err)
	}

	if description.Valid {
		item.Description = description.String
	}
	if groupID.Valid {
		item.RefundGroupID = groupID.String
	}
	item.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.RefundItem{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return item, nil
}
