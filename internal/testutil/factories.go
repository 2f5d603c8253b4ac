package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Savings").
//	    WithType("savings").
//	    Build(t, db)
type AccountBuilder struct {
	ID       string
	Name     string
	Type     string
	Currency string
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:       MakeID(),
		Name:     MakeAccountName("Test Account"),
		Type:     "checking",
		Currency: "EUR",
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithType sets a custom account type.
func (b *AccountBuilder) WithType(accountType string) *AccountBuilder {
	b.Type = accountType
	return b
}

// WithCurrency sets a custom currency code.
func (b *AccountBuilder) WithCurrency(currency string) *AccountBuilder {
	b.Currency = currency
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO account (id, name, type, currency, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Type, b.Currency, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:        b.ID,
		Name:      b.Name,
		Type:      b.Type,
		Currency:  b.Currency,
		CreatedAt: createdAt,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	expense := testutil.NewTransaction(account.ID).
//	    AsExpense(50.00).
//	    WithDescription("Dinner at Luigi's").
//	    Build(t, db)
//
//	income := testutil.NewTransaction(account.ID).
//	    AsIncome(30.00).
//	    WithCategory("refund").
//	    Build(t, db)
type TransactionBuilder struct {
	ID          string
	AccountID   string
	Date        time.Time
	Description string
	Amount      float64
	Type        model.TransactionType
	Category    string
	Source      string
}

// NewTransaction creates a TransactionBuilder with expense defaults for the
// given account.
func NewTransaction(accountID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		AccountID:   accountID,
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		Description: "Test transaction",
		Amount:      -50.00,
		Type:        model.TypeExpense,
		Category:    "groceries",
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets a custom date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithDescription sets a custom description.
func (b *TransactionBuilder) WithDescription(desc string) *TransactionBuilder {
	b.Description = desc
	return b
}

// WithCategory sets a custom category.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	b.Category = category
	return b
}

// WithSource sets a custom source marker (e.g. a bank import ID).
func (b *TransactionBuilder) WithSource(source string) *TransactionBuilder {
	b.Source = source
	return b
}

// AsExpense marks the transaction as an expense of the given magnitude.
// The stored amount is negative.
func (b *TransactionBuilder) AsExpense(magnitude float64) *TransactionBuilder {
	b.Type = model.TypeExpense
	b.Amount = -magnitude
	if b.Category == "" {
		b.Category = "groceries"
	}
	return b
}

// AsIncome marks the transaction as an income of the given amount.
func (b *TransactionBuilder) AsIncome(amount float64) *TransactionBuilder {
	b.Type = model.TypeIncome
	b.Amount = amount
	b.Category = "refund"
	return b
}

// AsTransfer marks the transaction as a transfer of the given amount.
func (b *TransactionBuilder) AsTransfer(amount float64) *TransactionBuilder {
	b.Type = model.TypeTransfer
	b.Amount = amount
	b.Category = "internal"
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO "transaction" (id, account_id, date, description, amount, type, category, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var source any
	if b.Source != "" {
		source = b.Source
	}

	_, err := db.Exec(query,
		b.ID,
		b.AccountID,
		b.Date.Format("2006-01-02"),
		b.Description,
		b.Amount,
		string(b.Type),
		b.Category,
		source,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:          b.ID,
		AccountID:   b.AccountID,
		Date:        b.Date,
		Description: b.Description,
		Amount:      b.Amount,
		Type:        b.Type,
		Category:    b.Category,
		Source:      b.Source,
		CreatedAt:   createdAt,
	}
}

// RefundGroupBuilder provides a fluent interface for creating test refund groups.
type RefundGroupBuilder struct {
	ID          string
	Name        string
	Description string
}

// NewRefundGroup creates a RefundGroupBuilder with sensible defaults.
func NewRefundGroup() *RefundGroupBuilder {
	return &RefundGroupBuilder{
		ID:   MakeID(),
		Name: "Test Refund Group",
	}
}

// WithID sets a custom ID.
func (b *RefundGroupBuilder) WithID(id string) *RefundGroupBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *RefundGroupBuilder) WithName(name string) *RefundGroupBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *RefundGroupBuilder) WithDescription(desc string) *RefundGroupBuilder {
	b.Description = desc
	return b
}

// Build creates the refund group in the database and returns it.
func (b *RefundGroupBuilder) Build(t *testing.T, db *sql.DB) model.RefundGroup {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO refund_group (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Description, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test refund group: %v", err)
	}

	return model.RefundGroup{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   createdAt,
	}
}

// RefundItemBuilder provides a fluent interface for creating test refund items.
//
// Example usage:
//
//	item := testutil.NewRefundItem(expense.ID, income.ID).
//	    WithAmount(25.00).
//	    WithGroup(group.ID).
//	    Build(t, db)
type RefundItemBuilder struct {
	ID                   string
	Amount               float64
	Description          string
	ExpenseTransactionID string
	IncomeTransactionID  string
	RefundGroupID        string
}

// NewRefundItem creates a RefundItemBuilder linking the given expense and income.
func NewRefundItem(expenseID, incomeID string) *RefundItemBuilder {
	return &RefundItemBuilder{
		ID:                   MakeID(),
		Amount:               10.00,
		Description:          "Refund: Test transaction (20.0%)",
		ExpenseTransactionID: expenseID,
		IncomeTransactionID:  incomeID,
	}
}

// WithID sets a custom ID.
func (b *RefundItemBuilder) WithID(id string) *RefundItemBuilder {
	b.ID = id
	return b
}

// WithAmount sets a custom amount.
func (b *RefundItemBuilder) WithAmount(amount float64) *RefundItemBuilder {
	b.Amount = amount
	return b
}

// WithDescription sets a custom description.
func (b *RefundItemBuilder) WithDescription(desc string) *RefundItemBuilder {
	b.Description = desc
	return b
}

// WithGroup attaches the item to a refund group.
func (b *RefundItemBuilder) WithGroup(groupID string) *RefundItemBuilder {
	b.RefundGroupID = groupID
	return b
}

// Build creates the refund item in the database and returns it.
func (b *RefundItemBuilder) Build(t *testing.T, db *sql.DB) model.RefundItem {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO refund_item (id, amount, description, expense_transaction_id, income_transaction_id, refund_group_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var groupID any
	if b.RefundGroupID != "" {
		groupID = b.RefundGroupID
	}

	_, err := db.Exec(query,
		b.ID,
		b.Amount,
		b.Description,
		b.ExpenseTransactionID,
		b.IncomeTransactionID,
		groupID,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test refund item: %v", err)
	}

	return model.RefundItem{
		ID:                   b.ID,
		Amount:               b.Amount,
		Description:          b.Description,
		ExpenseTransactionID: b.ExpenseTransactionID,
		IncomeTransactionID:  b.IncomeTransactionID,
		RefundGroupID:        b.RefundGroupID,
		CreatedAt:            createdAt,
	}
}

// Convenience functions

// CreateAccount creates an account with the given name and default values.
func CreateAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Build(t, db)
}

// CreateExpense creates an expense transaction on the account with the given
// magnitude (stored negative).
func CreateExpense(t *testing.T, db *sql.DB, accountID, description string, magnitude float64) model.Transaction {
	t.Helper()
	return NewTransaction(accountID).AsExpense(magnitude).WithDescription(description).Build(t, db)
}

// CreateIncome creates an income transaction on the account.
func CreateIncome(t *testing.T, db *sql.DB, accountID, description string, amount float64) model.Transaction {
	t.Helper()
	return NewTransaction(accountID).AsIncome(amount).WithDescription(description).Build(t, db)
}
