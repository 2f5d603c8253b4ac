// Package refund implements the refund-allocation flow: a pure allocation
// engine that bounds amounts allocated between selected expense and income
// transactions, and a wizard controller that drives selection, allocation and
// submission. Persistence is delegated to injected collaborators; nothing in
// this package touches the database directly.
package refund

import (
	"math"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// Item is one (expense, income) allocation pair in the working set.
// MaxAmount is the ceiling the pair could ever be allocated; Amount is the
// current user-entered allocation.
type Item struct {
	ExpenseID string  `json:"expenseId"`
	IncomeID  string  `json:"incomeId"`
	Amount    float64 `json:"amount"`
	MaxAmount float64 `json:"maxAmount"`
}

// PairKey returns the canonical lookup key for an (expense, income) pair.
func PairKey(expenseID, incomeID string) string {
	return expenseID + "-" + incomeID
}

// Matrix is the bounded allocation working set for one selection of expenses
// and incomes. It is owned by a single wizard instance and is not safe for
// concurrent use.
type Matrix struct {
	items           []Item
	expenseCapacity map[string]float64
	incomeCapacity  map[string]float64
}

// NewMatrix returns an empty allocation matrix.
func NewMatrix() *Matrix {
	return &Matrix{
		expenseCapacity: make(map[string]float64),
		incomeCapacity:  make(map[string]float64),
	}
}

// Regenerate replaces the entire working set with the cross product of the
// given selections: one Item per (expense, income) pair. If either selection
// is empty the result is empty; there is no partial matrix.
//
// Amounts initialize to 0 unless the existing lookup (keyed by PairKey)
// carries a persisted value for the pair, in which case that value is used,
// capped at the pair's MaxAmount. MaxAmount is always recomputed as
// min(|expense.amount|, income.amount).
func (m *Matrix) Regenerate(expenses, incomes []model.Transaction, existing map[string]float64) {
	m.items = nil
	m.expenseCapacity = make(map[string]float64, len(expenses))
	m.incomeCapacity = make(map[string]float64, len(incomes))

	if len(expenses) == 0 || len(incomes) == 0 {
		return
	}

	for _, e := range expenses {
		m.expenseCapacity[e.ID] = math.Abs(e.Amount)
	}
	for _, i := range incomes {
		m.incomeCapacity[i.ID] = i.Amount
	}

	m.items = make([]Item, 0, len(expenses)*len(incomes))
	for _, e := range expenses {
		for _, i := range incomes {
			maxAmount := math.Min(math.Abs(e.Amount), i.Amount)
			amount := 0.0
			if existing != nil {
				amount = math.Min(existing[PairKey(e.ID, i.ID)], maxAmount)
			}
			m.items = append(m.items, Item{
				ExpenseID: e.ID,
				IncomeID:  i.ID,
				Amount:    amount,
				MaxAmount: maxAmount,
			})
		}
	}
}

// SetAllocation sets the amount for an existing pair, re-clamping defensively:
// the stored amount never exceeds the pair's MaxAmount, the expense's
// remaining capacity or the income's remaining capacity (capacity left by all
// other pairs). Negative input clamps to 0. Unknown pairs are a no-op.
func (m *Matrix) SetAllocation(expenseID, incomeID string, amount float64) {
	idx := m.indexOf(expenseID, incomeID)
	if idx < 0 {
		return
	}

	if amount < 0 {
		amount = 0
	}

	item := &m.items[idx]

	expenseRemaining := m.expenseCapacity[expenseID] - m.allocatedExcept(idx, func(it Item) bool { return it.ExpenseID == expenseID })
	incomeRemaining := m.incomeCapacity[incomeID] - m.allocatedExcept(idx, func(it Item) bool { return it.IncomeID == incomeID })

	maxPossible := math.Min(item.MaxAmount, math.Min(expenseRemaining, incomeRemaining))
	item.Amount = math.Min(amount, maxPossible)
}

// RemainingExpense returns the expense's capacity minus everything currently
// allocated against it. Zero for unknown IDs.
func (m *Matrix) RemainingExpense(expenseID string) float64 {
	return m.expenseCapacity[expenseID] - m.allocatedExcept(-1, func(it Item) bool { return it.ExpenseID == expenseID })
}

// RemainingIncome returns the income's capacity minus everything currently
// allocated from it. Zero for unknown IDs.
func (m *Matrix) RemainingIncome(incomeID string) float64 {
	return m.incomeCapacity[incomeID] - m.allocatedExcept(-1, func(it Item) bool { return it.IncomeID == incomeID })
}

// Items returns a copy of the full working set.
func (m *Matrix) Items() []Item {
	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}

// ActiveItems returns the pairs with a positive amount.
func (m *Matrix) ActiveItems() []Item {
	active := []Item{}
	for _, it := range m.items {
		if it.Amount > 0 {
			active = append(active, it)
		}
	}
	return active
}

// TotalAllocated returns the sum of all allocated amounts.
func (m *Matrix) TotalAllocated() float64 {
	var total float64
	for _, it := range m.items {
		total += it.Amount
	}
	return total
}

// Len returns the number of pairs in the working set.
func (m *Matrix) Len() int {
	return len(m.items)
}

func (m *Matrix) indexOf(expenseID, incomeID string) int {
	for i, it := range m.items {
		if it.ExpenseID == expenseID && it.IncomeID == incomeID {
			return i
		}
	}
	return -1
}

// allocatedExcept sums the amounts of all pairs matching the predicate,
// skipping the pair at index skip (-1 to include everything).
func (m *Matrix) allocatedExcept(skip int, match func(Item) bool) float64 {
	var sum float64
	for i, it := range m.items {
		if i == skip || !match(it) {
			continue
		}
		sum += it.Amount
	}
	return sum
}
