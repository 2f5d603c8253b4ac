package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - accountId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: income, expense, transfer
//   - category: Must belong to the catalogue for the given type
//   - amount: Must be non-zero, with a sign matching the type
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	accountErr := ValidateUUID(req.AccountID)
	if accountErr != nil {
		return accountErr
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	}
	_, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}

	txType, typeErr := model.ParseTransactionType(req.Type)
	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if typeErr != nil {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	} else if _, catErr := model.ParseCategory(txType, req.Category); catErr != nil {
		errors["category"] = fmt.Sprintf("invalid category %q for type %s", req.Category, req.Type)
	}

	if req.Amount == 0.0 {
		errors["amount"] = "amount must be non-zero"
	} else if typeErr == nil {
		switch {
		case txType == model.TypeExpense && req.Amount > 0:
			errors["amount"] = "expense amount must be negative"
		case txType == model.TypeIncome && req.Amount < 0:
			errors["amount"] = "income amount must be positive"
		}
	}

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	} else if len(req.Description) > 500 {
		errors["description"] = "description must be 500 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.AccountID != nil {
		if accountErr := ValidateUUID(*req.AccountID); accountErr != nil {
			return accountErr
		}
	}

	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if req.Type != nil {
		if _, err := model.ParseTransactionType(*req.Type); err != nil {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}

	if req.Amount != nil && *req.Amount == 0.0 {
		errors["amount"] = "amount must be non-zero"
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			errors["description"] = "description cannot be empty"
		} else if len(*req.Description) > 500 {
			errors["description"] = "description must be 500 characters or less"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateBatchDelete validates a batch transaction deletion request.
// The id list must be non-empty and every entry a valid UUID.
func ValidateBatchDelete(req request.BatchDeleteTransactionsRequest) error {
	return ValidateUUIDs(req.IDs)
}
