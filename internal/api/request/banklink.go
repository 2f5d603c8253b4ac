package request

type ConfigureBankLinkRequest struct {
	RequisitionID     string `json:"requisition_id"`
	AccountID         string `json:"account_id"`
	AccessToken       string `json:"access_token"`
	TokenExpiresAt    string `json:"token_expires_at,omitempty"`
	AutoImportEnabled bool   `json:"auto_import_enabled"`
	Enabled           bool   `json:"enabled"`
}

type SyncBankLinkRequest struct {
	AccountID string `json:"account_id"`
}
