package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Account table
		CREATE TABLE account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			type VARCHAR(20) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			description TEXT NOT NULL,
			amount FLOAT NOT NULL,
			type VARCHAR(10) NOT NULL,
			category VARCHAR(30) NOT NULL,
			source VARCHAR(20),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(account_id) REFERENCES account(id) ON DELETE CASCADE
		);

		-- Refund group table
		CREATE TABLE refund_group (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Refund item table
		CREATE TABLE refund_item (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			amount FLOAT NOT NULL,
			description TEXT,
			expense_transaction_id VARCHAR(36) NOT NULL,
			income_transaction_id VARCHAR(36) NOT NULL,
			refund_group_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(expense_transaction_id) REFERENCES "transaction"(id) ON DELETE CASCADE,
			FOREIGN KEY(income_transaction_id) REFERENCES "transaction"(id) ON DELETE CASCADE,
			FOREIGN KEY(refund_group_id) REFERENCES refund_group(id) ON DELETE SET NULL,
			CONSTRAINT unique_refund_pair_group UNIQUE (expense_transaction_id, income_transaction_id, refund_group_id)
		);

		-- Bank link configuration table
		CREATE TABLE bank_link_config (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			requisition_id VARCHAR(100) NOT NULL,
			account_id VARCHAR(36) NOT NULL,
			access_token VARCHAR(500) NOT NULL,
			token_expires_at DATETIME,
			last_sync_date DATETIME,
			auto_import_enabled BOOLEAN NOT NULL,
			enabled BOOLEAN NOT NULL,
			created_at DATETIME DEFAULT (CURRENT_TIMESTAMP),
			updated_at DATETIME DEFAULT (CURRENT_TIMESTAMP)
		);

		-- Indexes
		CREATE INDEX ix_transaction_account_id ON "transaction"(account_id);
		CREATE INDEX ix_transaction_date ON "transaction"(date);
		CREATE INDEX ix_transaction_type ON "transaction"(type);
		CREATE INDEX ix_transaction_category ON "transaction"(category);
		CREATE INDEX ix_refund_item_expense ON refund_item(expense_transaction_id);
		CREATE INDEX ix_refund_item_income ON refund_item(income_transaction_id);
		CREATE INDEX ix_refund_item_group ON refund_item(refund_group_id);
	`

	_, err := db.Exec(schema)
	return err
}
