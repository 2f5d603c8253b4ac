package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/nordigen"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/service"
)

// TestEncryptionKey is a 32-byte base64 fernet key for tests only.
const TestEncryptionKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)

	return service.NewAccountService(accountRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		refundRepo,
	)
}

func NewTestRefundService(t *testing.T, db *sql.DB) *service.RefundService {
	t.Helper()

	refundRepo := repository.NewRefundRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewRefundService(
		refundRepo,
		transactionRepo,
	)
}

func NewTestBudgetService(t *testing.T, db *sql.DB) *service.BudgetService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewBudgetService(transactionRepo)
}

// NewTestBankLinkService wires a BankLinkService against the given mock
// provider client and a test encryption key.
func NewTestBankLinkService(t *testing.T, db *sql.DB, client nordigen.Client) *service.BankLinkService {
	t.Helper()

	bankLinkRepo, err := repository.NewBankLinkRepository(db, TestEncryptionKey)
	if err != nil {
		t.Fatalf("Failed to create bank link repository: %v", err)
	}
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewBankLinkService(bankLinkRepo, transactionRepo, client)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeAccountName generates a unique account name with the given base.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Checking")
//	// Returns: "Checking 4821"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Test Account"
	}
	return fmt.Sprintf("%s %04d", base, rand.Intn(10000))
}
