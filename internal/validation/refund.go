package validation

import (
	"strings"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
)

// ValidateCreateRefundGroup validates a refund group creation request.
func ValidateCreateRefundGroup(req request.CreateRefundGroupRequest) error {
	return validateGroupFields(req.Name, req.Description)
}

// ValidateUpdateRefundGroup validates a refund group update request.
func ValidateUpdateRefundGroup(req request.UpdateRefundGroupRequest) error {
	return validateGroupFields(req.Name, req.Description)
}

func validateGroupFields(name, description string) error {
	errors := make(map[string]string)

	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	} else if len(name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if len(description) > 500 {
		errors["description"] = "description must be 500 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateRefundItem validates a refund item creation request.
// Both transaction references must be valid UUIDs and the amount positive;
// capacity constraints are enforced by the service against stored data.
func ValidateCreateRefundItem(req request.CreateRefundItemRequest) error {
	if err := ValidateUUID(req.ExpenseTransactionID); err != nil {
		return err
	}
	if err := ValidateUUID(req.IncomeTransactionID); err != nil {
		return err
	}
	if req.RefundGroupID != "" {
		if err := ValidateUUID(req.RefundGroupID); err != nil {
			return err
		}
	}

	errors := make(map[string]string)
	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateRefundItem validates a refund item update request.
func ValidateUpdateRefundItem(req request.UpdateRefundItemRequest) error {
	if req.Amount <= 0.0 {
		return &Error{Fields: map[string]string{"amount": "amount must be positive"}}
	}
	return nil
}
