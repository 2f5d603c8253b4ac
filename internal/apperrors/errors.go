package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrRefundGroupNotFound indicates that a refund group with the given ID does not exist.
	ErrRefundGroupNotFound = errors.New("refund group not found")

	// ErrRefundItemNotFound indicates that a refund item with the given ID does not exist.
	ErrRefundItemNotFound = errors.New("refund item not found")

	// ErrBankLinkNotConfigured indicates the bank link has not been set up.
	ErrBankLinkNotConfigured = errors.New("bank link not configured")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrUnknownTransactionType indicates a transaction type outside income/expense/transfer.
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrUnknownCategory indicates a category not present in the category catalogue.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrGroupNameRequired indicates that a refund spanning multiple transactions
	// was submitted without a group name.
	ErrGroupNameRequired = errors.New("refund group name is required")

	// ErrNoActiveAllocations indicates a refund submission with no positive allocation.
	ErrNoActiveAllocations = errors.New("no allocation with a positive amount")

	// ErrAllocationExceedsCapacity indicates a refund amount larger than the
	// remaining capacity of its expense or income transaction.
	ErrAllocationExceedsCapacity = errors.New("allocation exceeds remaining capacity")

	// ErrTransactionRole indicates a refund item referencing a transaction of the wrong type
	// (expense side must be an expense, income side must be an income).
	ErrTransactionRole = errors.New("transaction type does not match its refund role")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Account operation errors
	ErrFailedToRetrieveAccounts = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveAccount  = errors.New("failed to retrieve account")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Refund operation errors
	ErrFailedToCreateRefund        = errors.New("failed to create refund")
	ErrFailedToUpdateRefund        = errors.New("failed to update refund")
	ErrFailedToRetrieveRefundGroup = errors.New("failed to retrieve refund group")
	ErrFailedToRetrieveRefundItems = errors.New("failed to retrieve refund items")

	// Budget operation errors
	ErrFailedToGetBudgetSummary = errors.New("failed to get budget summary")

	// Bank link operation errors
	ErrFailedToRetrieveBankLink = errors.New("failed to retrieve bank link configuration")
	ErrFailedToSyncBankLink     = errors.New("failed to sync bank transactions")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
