package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository dependency.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccounts retrieves all accounts.
func (s *AccountService) GetAccounts() ([]model.Account, error) {
	return s.accountRepo.GetAccounts()
}

// GetAccount retrieves a single account by ID.
func (s *AccountService) GetAccount(accountID string) (model.Account, error) {
	account, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return model.Account{}, err
	}
	if account.ID == "" {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	return account, nil
}

// CreateAccount creates a new account from the validated request.
func (s *AccountService) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (*model.Account, error) {
	account := &model.Account{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Type:      req.Type,
		Currency:  req.Currency,
		CreatedAt: time.Now(),
	}

	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// DeleteAccount removes an account and, via cascade, its transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	affected, err := s.accountRepo.DeleteAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
