package validation

import (
	"strings"
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
)

// ValidateConfigureBankLink validates a bank link configuration request.
func ValidateConfigureBankLink(req request.ConfigureBankLinkRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.RequisitionID) == "" {
		errors["requisitionId"] = "requisition_id is required"
	}
	if strings.TrimSpace(req.AccountID) == "" {
		errors["accountId"] = "account_id is required"
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		errors["accessToken"] = "access_token is required"
	}
	if req.TokenExpiresAt != "" {
		if _, err := time.Parse(time.RFC3339, req.TokenExpiresAt); err != nil {
			if _, err := time.Parse("2006-01-02", req.TokenExpiresAt); err != nil {
				errors["tokenExpiresAt"] = "token_expires_at must be RFC3339 or YYYY-MM-DD"
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
