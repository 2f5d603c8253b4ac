package validation

import (
	"fmt"
	"strings"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// ValidateCreateAccount validates an account creation request.
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidAccountType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if len(req.Currency) != 3 {
		errors["currency"] = "currency must be a 3-letter code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
