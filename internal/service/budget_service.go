package service

import (
	"time"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
)

// BudgetService handles spending summary business logic operations.
type BudgetService struct {
	transactionRepo *repository.TransactionRepository
}

// NewBudgetService creates a new BudgetService with the provided repository dependency.
func NewBudgetService(transactionRepo *repository.TransactionRepository) *BudgetService {
	return &BudgetService{transactionRepo: transactionRepo}
}

// Summary aggregates per-category totals over the given date range, excluding
// transfers. Income totals are positive sums; expense totals are reported as
// positive magnitudes.
func (s *BudgetService) Summary(fromDate, toDate time.Time) (model.BudgetSummary, error) {
	if fromDate.After(toDate) {
		return model.BudgetSummary{}, apperrors.ErrInvalidDateRange
	}

	totals, err := s.transactionRepo.CategoryTotals(fromDate, toDate)
	if err != nil {
		return model.BudgetSummary{}, err
	}

	summary := model.BudgetSummary{
		FromDate:   fromDate,
		ToDate:     toDate,
		Categories: totals,
	}
	for _, ct := range totals {
		if ct.Total >= 0 {
			summary.TotalIncome += ct.Total
		} else {
			summary.TotalExpense += -ct.Total
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense

	return summary, nil
}
