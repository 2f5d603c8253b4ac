package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/refund"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
)

// RefundService handles refund group and refund item business logic, and
// implements refund.Submitter: it converts a finalized allocation set into
// persisted group/item mutations.
type RefundService struct {
	refundRepo      *repository.RefundRepository
	transactionRepo *repository.TransactionRepository
}

// NewRefundService creates a new RefundService with the provided repository dependencies.
func NewRefundService(
	refundRepo *repository.RefundRepository,
	transactionRepo *repository.TransactionRepository,
) *RefundService {
	return &RefundService{
		refundRepo:      refundRepo,
		transactionRepo: transactionRepo,
	}
}

// synthesizeDescription builds the refund item description from the expense it
// reimburses: "Refund: {description} ({percentage}%)", percentage to one decimal.
func synthesizeDescription(expense model.Transaction, amount float64) string {
	capacity := math.Abs(expense.Amount)
	var percentage float64
	if capacity > 0 {
		percentage = amount / capacity * 100
	}
	return fmt.Sprintf("Refund: %s (%.1f%%)", expense.Description, percentage)
}

// Submit persists a finalized allocation set. The group create/update is
// awaited before any item mutation because item rows need the group ID; the
// item mutations themselves carry no mutual ordering and run concurrently.
// On any failure the error is returned as-is so the caller's state survives
// for a retry; no partial rollback is attempted.
func (s *RefundService) Submit(ctx context.Context, plan refund.SubmitPlan) error {
	if len(plan.Allocations) == 0 {
		return apperrors.ErrNoActiveAllocations
	}

	groupID, err := s.ensureGroup(ctx, plan)
	if err != nil {
		return err
	}

	if plan.Editing {
		return s.reconcileItems(ctx, plan, groupID)
	}
	return s.createItems(ctx, plan, groupID)
}

// ensureGroup creates or updates the refund group when one is needed and
// returns its ID; returns the empty string for single-pair refunds.
func (s *RefundService) ensureGroup(ctx context.Context, plan refund.SubmitPlan) (string, error) {
	expenses := map[string]bool{}
	incomes := map[string]bool{}
	for _, a := range plan.Allocations {
		expenses[a.ExpenseID] = true
		incomes[a.IncomeID] = true
	}

	needsGroup := len(expenses) > 1 || len(incomes) > 1 || (plan.Editing && plan.GroupID != "")
	if !needsGroup {
		return "", nil
	}

	if strings.TrimSpace(plan.GroupName) == "" {
		return "", apperrors.ErrGroupNameRequired
	}

	if plan.GroupID == "" {
		group := &model.RefundGroup{
			ID:          uuid.New().String(),
			Name:        plan.GroupName,
			Description: plan.GroupDescription,
			CreatedAt:   time.Now(),
		}
		if err := s.refundRepo.InsertGroup(ctx, group); err != nil {
			return "", fmt.Errorf("%w: %w", apperrors.ErrFailedToCreateRefund, err)
		}
		return group.ID, nil
	}

	// Existing group: name/description written unconditionally, even if unchanged.
	affected, err := s.refundRepo.UpdateGroup(ctx, &model.RefundGroup{
		ID:          plan.GroupID,
		Name:        plan.GroupName,
		Description: plan.GroupDescription,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrFailedToUpdateRefund, err)
	}
	if affected == 0 {
		return "", apperrors.ErrRefundGroupNotFound
	}
	return plan.GroupID, nil
}

// createItems persists one refund item per allocation, with no diffing.
func (s *RefundService) createItems(ctx context.Context, plan refund.SubmitPlan, groupID string) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, a := range plan.Allocations {
		a := a
		g.Go(func() error {
			item := &model.RefundItem{
				ID:                   uuid.New().String(),
				Amount:               a.Amount,
				Description:          synthesizeDescription(plan.Expenses[a.ExpenseID], a.Amount),
				ExpenseTransactionID: a.ExpenseID,
				IncomeTransactionID:  a.IncomeID,
				RefundGroupID:        groupID,
				CreatedAt:            time.Now(),
			}
			return s.refundRepo.InsertItem(ctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToCreateRefund, err)
	}
	return nil
}

// reconcileItems diffs the allocations against the previously-persisted items,
// matched by (expense, income) pair: changed amounts are updated, vanished
// pairs deleted, new pairs created. Items whose pair and amount are unchanged
// are not touched.
func (s *RefundService) reconcileItems(ctx context.Context, plan refund.SubmitPlan, groupID string) error {
	existingByPair := make(map[string]model.RefundItem, len(plan.ExistingItems))
	for _, item := range plan.ExistingItems {
		existingByPair[refund.PairKey(item.ExpenseTransactionID, item.IncomeTransactionID)] = item
	}

	surviving := map[string]bool{}
	g, ctx := errgroup.WithContext(ctx)

	for _, a := range plan.Allocations {
		a := a
		key := refund.PairKey(a.ExpenseID, a.IncomeID)
		surviving[key] = true

		if existing, ok := existingByPair[key]; ok {
			if existing.Amount == a.Amount {
				continue
			}
			g.Go(func() error {
				description := synthesizeDescription(plan.Expenses[a.ExpenseID], a.Amount)
				_, err := s.refundRepo.UpdateItemAmount(ctx, existing.ID, a.Amount, description)
				return err
			})
			continue
		}

		g.Go(func() error {
			item := &model.RefundItem{
				ID:                   uuid.New().String(),
				Amount:               a.Amount,
				Description:          synthesizeDescription(plan.Expenses[a.ExpenseID], a.Amount),
				ExpenseTransactionID: a.ExpenseID,
				IncomeTransactionID:  a.IncomeID,
				RefundGroupID:        groupID,
				CreatedAt:            time.Now(),
			}
			return s.refundRepo.InsertItem(ctx, item)
		})
	}

	for key, item := range existingByPair {
		if surviving[key] {
			continue
		}
		item := item
		g.Go(func() error {
			_, err := s.refundRepo.DeleteItem(ctx, item.ID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToUpdateRefund, err)
	}
	return nil
}

// CreateGroup creates a refund group from the validated request.
func (s *RefundService) CreateGroup(ctx context.Context, req request.CreateRefundGroupRequest) (*model.RefundGroup, error) {
	group := &model.RefundGroup{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.refundRepo.InsertGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroup overwrites a group's name and description.
func (s *RefundService) UpdateGroup(ctx context.Context, groupID string, req request.UpdateRefundGroupRequest) (*model.RefundGroup, error) {
	group := &model.RefundGroup{
		ID:          groupID,
		Name:        req.Name,
		Description: req.Description,
	}
	affected, err := s.refundRepo.UpdateGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperrors.ErrRefundGroupNotFound
	}
	return group, nil
}

// GetGroup retrieves a refund group with its items.
func (s *RefundService) GetGroup(groupID string) (model.RefundGroupDetail, error) {
	group, err := s.refundRepo.GetGroup(groupID)
	if err != nil {
		return model.RefundGroupDetail{}, err
	}
	if group.ID == "" {
		return model.RefundGroupDetail{}, apperrors.ErrRefundGroupNotFound
	}

	items, err := s.refundRepo.GetItemsByGroup(groupID)
	if err != nil {
		return model.RefundGroupDetail{}, err
	}

	return model.RefundGroupDetail{RefundGroup: group, Items: items}, nil
}

// DeleteGroup removes a refund group. Its items survive ungrouped.
func (s *RefundService) DeleteGroup(ctx context.Context, groupID string) error {
	affected, err := s.refundRepo.DeleteGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrRefundGroupNotFound
	}
	return nil
}

// CreateItem creates a single refund item, enforcing the allocation
// invariants server-side: both transactions must exist with the right roles,
// and the amount must fit within both sides' remaining capacity.
func (s *RefundService) CreateItem(ctx context.Context, req request.CreateRefundItemRequest) (*model.RefundItem, error) {
	expense, income, err := s.resolvePair(req.ExpenseTransactionID, req.IncomeTransactionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCapacity(expense, income, req.Amount, ""); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = synthesizeDescription(expense, req.Amount)
	}

	item := &model.RefundItem{
		ID:                   uuid.New().String(),
		Amount:               req.Amount,
		Description:          description,
		ExpenseTransactionID: req.ExpenseTransactionID,
		IncomeTransactionID:  req.IncomeTransactionID,
		RefundGroupID:        req.RefundGroupID,
		CreatedAt:            time.Now(),
	}
	if err := s.refundRepo.InsertItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem changes a refund item's amount, re-checking capacity with the
// item's own previous amount excluded.
func (s *RefundService) UpdateItem(ctx context.Context, itemID string, req request.UpdateRefundItemRequest) (*model.RefundItem, error) {
	item, err := s.refundRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		return nil, apperrors.ErrRefundItemNotFound
	}

	expense, income, err := s.resolvePair(item.ExpenseTransactionID, item.IncomeTransactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapacity(expense, income, req.Amount, item.ID); err != nil {
		return nil, err
	}

	description := synthesizeDescription(expense, req.Amount)
	affected, err := s.refundRepo.UpdateItemAmount(ctx, itemID, req.Amount, description)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperrors.ErrRefundItemNotFound
	}

	item.Amount = req.Amount
	item.Description = description
	return &item, nil
}

// DeleteItem removes a refund item by ID.
func (s *RefundService) DeleteItem(ctx context.Context, itemID string) error {
	affected, err := s.refundRepo.DeleteItem(ctx, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrRefundItemNotFound
	}
	return nil
}

// GetItemsForTransaction retrieves all refund items referencing a transaction
// on either side.
func (s *RefundService) GetItemsForTransaction(transactionID string) ([]model.RefundItem, error) {
	return s.refundRepo.GetItemsForTransaction(transactionID)
}

func (s *RefundService) resolvePair(expenseID, incomeID string) (model.Transaction, model.Transaction, error) {
	expense, err := s.transactionRepo.GetTransaction(expenseID)
	if err != nil {
		return model.Transaction{}, model.Transaction{}, err
	}
	if expense.ID == "" {
		return model.Transaction{}, model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	income, err := s.transactionRepo.GetTransaction(incomeID)
	if err != nil {
		return model.Transaction{}, model.Transaction{}, err
	}
	if income.ID == "" {
		return model.Transaction{}, model.Transaction{}, apperrors.ErrTransactionNotFound
	}

	if expense.Type != model.TypeExpense || income.Type != model.TypeIncome {
		return model.Transaction{}, model.Transaction{}, apperrors.ErrTransactionRole
	}

	return expense, income, nil
}

// checkCapacity verifies that amount fits within the expense's and the
// income's remaining capacity, ignoring the item identified by excludeItemID
// (for updates).
func (s *RefundService) checkCapacity(expense, income model.Transaction, amount float64, excludeItemID string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrNoActiveAllocations)
	}

	expenseItems, err := s.refundRepo.GetItemsForTransaction(expense.ID)
	if err != nil {
		return err
	}
	var expenseAllocated float64
	for _, it := range expenseItems {
		if it.ID != excludeItemID && it.ExpenseTransactionID == expense.ID {
			expenseAllocated += it.Amount
		}
	}

	incomeItems, err := s.refundRepo.GetItemsForTransaction(income.ID)
	if err != nil {
		return err
	}
	var incomeAllocated float64
	for _, it := range incomeItems {
		if it.ID != excludeItemID && it.IncomeTransactionID == income.ID {
			incomeAllocated += it.Amount
		}
	}

	if amount > math.Abs(expense.Amount)-expenseAllocated {
		return fmt.Errorf("%w: amount %.2f, expense remaining %.2f",
			apperrors.ErrAllocationExceedsCapacity, amount, math.Abs(expense.Amount)-expenseAllocated)
	}
	if amount > income.Amount-incomeAllocated {
		return fmt.Errorf("%w: amount %.2f, income remaining %.2f",
			apperrors.ErrAllocationExceedsCapacity, amount, income.Amount-incomeAllocated)
	}

	return nil
}
