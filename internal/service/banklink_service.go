package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/nordigen"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
)

// defaultSyncLookback bounds the first sync when no previous sync exists.
const defaultSyncLookback = 90 * 24 * time.Hour

// BankLinkService handles the bank data provider integration: configuration
// and transaction import.
type BankLinkService struct {
	bankLinkRepo    *repository.BankLinkRepository
	transactionRepo *repository.TransactionRepository
	client          nordigen.Client
}

// NewBankLinkService creates a new BankLinkService with the provided dependencies.
func NewBankLinkService(
	bankLinkRepo *repository.BankLinkRepository,
	transactionRepo *repository.TransactionRepository,
	client nordigen.Client,
) *BankLinkService {
	return &BankLinkService{
		bankLinkRepo:    bankLinkRepo,
		transactionRepo: transactionRepo,
		client:          client,
	}
}

// GetConfig retrieves the bank link configuration.
// Adds a token expiration warning if the token expires within 30 days.
func (s *BankLinkService) GetConfig() (*model.BankLinkConfig, error) {
	config, err := s.bankLinkRepo.GetConfig()
	if err != nil {
		return config, err
	}

	if config.TokenExpiresAt != nil && !config.TokenExpiresAt.IsZero() {
		diff := time.Until(*config.TokenExpiresAt)
		if diff.Hours() <= 720.0 {
			config.TokenWarning = fmt.Sprintf("Token expires in %d days",
				int64(diff.Hours()/24))
		}
	}

	return config, nil
}

// Configure replaces the bank link configuration with the given requisition,
// account and access token.
func (s *BankLinkService) Configure(ctx context.Context, req request.ConfigureBankLinkRequest) (*model.BankLinkConfig, error) {
	cfg := &model.BankLinkConfig{
		Configured:        true,
		RequisitionID:     req.RequisitionID,
		AccountID:         req.AccountID,
		AutoImportEnabled: req.AutoImportEnabled,
		Enabled:           req.Enabled,
	}

	if req.TokenExpiresAt != "" {
		expiresAt, err := repository.ParseTime(req.TokenExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse token_expires_at: %w", err)
		}
		cfg.TokenExpiresAt = &expiresAt
	}

	if err := s.bankLinkRepo.SaveConfig(ctx, cfg, req.AccessToken); err != nil {
		return nil, err
	}

	return s.GetConfig()
}

// Sync fetches booked transactions from the bank data provider and imports
// the ones not yet present, keyed by the provider transaction ID. Transactions
// are fetched from the last sync date, or from a 90-day lookback on first run.
func (s *BankLinkService) Sync(ctx context.Context, accountID string) (*model.BankSyncResult, error) {
	config, err := s.bankLinkRepo.GetConfig()
	if err != nil {
		return nil, err
	}
	if !config.Configured || !config.Enabled {
		return nil, apperrors.ErrBankLinkNotConfigured
	}

	token, err := s.bankLinkRepo.AccessToken()
	if err != nil {
		return nil, err
	}

	from := time.Now().Add(-defaultSyncLookback)
	if config.LastSyncDate != nil {
		from = *config.LastSyncDate
	}

	bankTxs, err := s.client.FetchTransactions(ctx, token, config.AccountID, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncBankLink, err)
	}

	result := &model.BankSyncResult{SyncedAt: time.Now()}
	for _, bt := range bankTxs {
		imported, err := s.importTransaction(ctx, accountID, bt)
		if err != nil {
			return nil, err
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	if err := s.bankLinkRepo.MarkSynced(ctx, result.SyncedAt); err != nil {
		return nil, err
	}

	return result, nil
}

// AutoSync runs Sync for scheduled imports, logging instead of failing the
// scheduler when the link is not configured.
func (s *BankLinkService) AutoSync(ctx context.Context, accountID string) {
	result, err := s.Sync(ctx, accountID)
	if err != nil {
		log.Printf("bank link auto-sync failed: %v", err)
		return
	}
	log.Printf("bank link auto-sync: %d imported, %d skipped", result.Imported, result.Skipped)
}

// importTransaction inserts one provider transaction unless its source marker
// already exists. Returns whether an insert happened.
func (s *BankLinkService) importTransaction(ctx context.Context, accountID string, bt nordigen.BankTransaction) (bool, error) {
	source := "nordigen:" + bt.TransactionID

	exists, err := s.transactionRepo.ExistsBySource(source)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	amount, err := strconv.ParseFloat(bt.TransactionAmount.Amount, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse amount %q: %w", bt.TransactionAmount.Amount, err)
	}

	date, err := repository.ParseTime(bt.BookingDate)
	if err != nil {
		return false, fmt.Errorf("failed to parse booking date %q: %w", bt.BookingDate, err)
	}

	txType := model.TypeExpense
	category := "other_expense"
	if amount > 0 {
		txType = model.TypeIncome
		category = "other_income"
	}

	description := strings.TrimSpace(bt.RemittanceInfo)
	if description == "" {
		description = "Bank transaction " + bt.TransactionID
	}

	t := &model.Transaction{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
		Category:    category,
		Source:      source,
		CreatedAt:   time.Now(),
	}
	if err := s.transactionRepo.InsertTransaction(ctx, t); err != nil {
		return false, err
	}
	return true, nil
}
