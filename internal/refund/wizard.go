package refund

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
)

// Step is one of the wizard's four linear states.
type Step int

// Wizard steps, in forward order.
const (
	StepExpenses Step = iota
	StepIncomes
	StepAllocations
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepExpenses:
		return "expenses"
	case StepIncomes:
		return "incomes"
	case StepAllocations:
		return "allocations"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Wizard guard errors.
var (
	ErrNoExpenseSelected = errors.New("at least one expense must be selected")
	ErrNoIncomeSelected  = errors.New("at least one income must be selected")
	ErrNoAllocation      = errors.New("at least one allocation must have a positive amount")
	ErrGroupNameRequired = errors.New("a group name is required for refunds spanning multiple transactions")
	ErrReviewIsTerminal  = errors.New("review is the final step")
	ErrTransactionRole   = errors.New("transaction type does not match the selection list")
)

// TransactionSource provides the candidate transaction listings and ID lookup
// the wizard needs. It is injected explicitly; the wizard holds no ambient
// application state.
type TransactionSource interface {
	// SearchTransactions returns one page of transactions of the given type
	// matching the search text, plus the total match count across all pages.
	SearchTransactions(ctx context.Context, txType model.TransactionType, search string, page, perPage int) ([]model.Transaction, int, error)

	// GetTransactionsByIDs resolves transactions by ID. Missing IDs are
	// absent from the result rather than an error.
	GetTransactionsByIDs(ctx context.Context, ids []string) ([]model.Transaction, error)
}

// SubmitPlan is the finalized allocation set handed to a Submitter.
type SubmitPlan struct {
	// GroupID is the existing refund group when editing, empty otherwise.
	GroupID          string
	GroupName        string
	GroupDescription string

	// Editing selects the diffing path: ExistingItems are reconciled against
	// Allocations instead of creating everything fresh.
	Editing       bool
	ExistingItems []model.RefundItem

	// Allocations carries only pairs with Amount > 0.
	Allocations []Item

	// Expenses maps expense transaction IDs to their transactions, for
	// description synthesis.
	Expenses map[string]model.Transaction
}

// Submitter persists a finalized allocation set.
type Submitter interface {
	Submit(ctx context.Context, plan SubmitPlan) error
}

// candidateList is the independently paginated, independently filtered state
// of one selection list. Pages append; changing the search resets the list.
type candidateList struct {
	txType model.TransactionType
	search string
	page   int
	items  []model.Transaction
	total  int
}

func (c *candidateList) reset(search string) {
	c.search = search
	c.page = 0
	c.items = nil
	c.total = 0
}

func (c *candidateList) loadNext(ctx context.Context, source TransactionSource, perPage int) error {
	items, total, err := source.SearchTransactions(ctx, c.txType, c.search, c.page+1, perPage)
	if err != nil {
		return err
	}
	c.page++
	c.items = append(c.items, items...)
	c.total = total
	return nil
}

func (c *candidateList) hasMore() bool {
	return len(c.items) < c.total
}

// DefaultPageSize is the fixed page size for candidate listings.
const DefaultPageSize = 20

// Wizard drives the four-step refund creation/edit flow. It owns its
// allocation matrix exclusively; each flow gets a fresh instance. The wizard
// is event-driven and single-threaded: it is not safe for concurrent use.
type Wizard struct {
	source    TransactionSource
	submitter Submitter

	step             Step
	expenseList      candidateList
	incomeList       candidateList
	selectedExpenses []model.Transaction
	selectedIncomes  []model.Transaction
	matrix           *Matrix

	groupName        string
	groupDescription string

	editing       bool
	groupID       string
	existingItems []model.RefundItem
	seed          map[string]float64
	initialized   bool
}

// NewWizard creates a wizard in the expenses step with an empty working set.
func NewWizard(source TransactionSource, submitter Submitter) *Wizard {
	return &Wizard{
		source:      source,
		submitter:   submitter,
		step:        StepExpenses,
		expenseList: candidateList{txType: model.TypeExpense},
		incomeList:  candidateList{txType: model.TypeIncome},
		matrix:      NewMatrix(),
	}
}

// Step returns the wizard's current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Matrix exposes the allocation working set.
func (w *Wizard) Matrix() *Matrix {
	return w.matrix
}

// SearchExpenses replaces the expense candidate list with page 1 of the given
// search. The income list is unaffected.
func (w *Wizard) SearchExpenses(ctx context.Context, search string) error {
	w.expenseList.reset(search)
	return w.expenseList.loadNext(ctx, w.source, DefaultPageSize)
}

// LoadMoreExpenses appends the next page of expense candidates.
func (w *Wizard) LoadMoreExpenses(ctx context.Context) error {
	return w.expenseList.loadNext(ctx, w.source, DefaultPageSize)
}

// SearchIncomes replaces the income candidate list with page 1 of the given
// search. The expense list is unaffected.
func (w *Wizard) SearchIncomes(ctx context.Context, search string) error {
	w.incomeList.reset(search)
	return w.incomeList.loadNext(ctx, w.source, DefaultPageSize)
}

// LoadMoreIncomes appends the next page of income candidates.
func (w *Wizard) LoadMoreIncomes(ctx context.Context) error {
	return w.incomeList.loadNext(ctx, w.source, DefaultPageSize)
}

// ExpenseCandidates returns the accumulated expense candidate pages.
func (w *Wizard) ExpenseCandidates() []model.Transaction {
	return w.expenseList.items
}

// IncomeCandidates returns the accumulated income candidate pages.
func (w *Wizard) IncomeCandidates() []model.Transaction {
	return w.incomeList.items
}

// HasMoreExpenses reports whether further expense candidate pages exist.
func (w *Wizard) HasMoreExpenses() bool {
	return w.expenseList.hasMore()
}

// HasMoreIncomes reports whether further income candidate pages exist.
func (w *Wizard) HasMoreIncomes() bool {
	return w.incomeList.hasMore()
}

// ToggleExpense adds the transaction to the expense selection, or removes it
// if already selected. The allocation matrix is regenerated from scratch.
func (w *Wizard) ToggleExpense(tx model.Transaction) error {
	if tx.Type != model.TypeExpense {
		return fmt.Errorf("%w: %s is not an expense", ErrTransactionRole, tx.ID)
	}
	w.selectedExpenses = toggle(w.selectedExpenses, tx)
	w.regenerate()
	return nil
}

// ToggleIncome adds the transaction to the income selection, or removes it if
// already selected. The allocation matrix is regenerated from scratch.
func (w *Wizard) ToggleIncome(tx model.Transaction) error {
	if tx.Type != model.TypeIncome {
		return fmt.Errorf("%w: %s is not an income", ErrTransactionRole, tx.ID)
	}
	w.selectedIncomes = toggle(w.selectedIncomes, tx)
	w.regenerate()
	return nil
}

// SelectedExpenses returns the current expense selection in toggle order.
func (w *Wizard) SelectedExpenses() []model.Transaction {
	return w.selectedExpenses
}

// SelectedIncomes returns the current income selection in toggle order.
func (w *Wizard) SelectedIncomes() []model.Transaction {
	return w.selectedIncomes
}

// SetAllocation sets the amount for one (expense, income) pair, subject to
// the engine's clamping.
func (w *Wizard) SetAllocation(expenseID, incomeID string, amount float64) {
	w.matrix.SetAllocation(expenseID, incomeID, amount)
}

// SetGroupName sets the draft refund group name.
func (w *Wizard) SetGroupName(name string) {
	w.groupName = name
}

// GroupName returns the draft refund group name.
func (w *Wizard) GroupName() string {
	return w.groupName
}

// SetGroupDescription sets the draft refund group description.
func (w *Wizard) SetGroupDescription(description string) {
	w.groupDescription = description
}

// NeedsGroup reports whether submission will require a refund group: more
// than one distinct expense or income among active allocations, or editing a
// refund that already belongs to a group.
func (w *Wizard) NeedsGroup() bool {
	if w.editing && w.groupID != "" {
		return true
	}
	expenses := map[string]bool{}
	incomes := map[string]bool{}
	for _, it := range w.matrix.ActiveItems() {
		expenses[it.ExpenseID] = true
		incomes[it.IncomeID] = true
	}
	return len(expenses) > 1 || len(incomes) > 1
}

// IsValid reports whether the wizard state is submittable: a non-empty
// selection on both sides, at least one positive allocation, and a group name
// whenever one is required.
func (w *Wizard) IsValid() bool {
	return w.guardUpTo(StepReview) == nil
}

// guardUpTo checks the transition guards for every step strictly before
// target.
func (w *Wizard) guardUpTo(target Step) error {
	if target > StepExpenses && len(w.selectedExpenses) == 0 {
		return ErrNoExpenseSelected
	}
	if target > StepIncomes && len(w.selectedIncomes) == 0 {
		return ErrNoIncomeSelected
	}
	if target > StepAllocations {
		if len(w.matrix.ActiveItems()) == 0 {
			return ErrNoAllocation
		}
		if w.NeedsGroup() && strings.TrimSpace(w.groupName) == "" {
			return ErrGroupNameRequired
		}
	}
	return nil
}

// Next advances to the following step if its guard holds.
func (w *Wizard) Next() error {
	if w.step == StepReview {
		return ErrReviewIsTerminal
	}
	target := w.step + 1
	if err := w.guardUpTo(target); err != nil {
		return err
	}
	w.step = target
	return nil
}

// Back moves one step backward. Backward movement is always allowed.
func (w *Wizard) Back() {
	if w.step > StepExpenses {
		w.step--
	}
}

// GoTo jumps to an arbitrary step, as a step indicator would. Backward jumps
// are always allowed; forward jumps require every intermediate guard to hold.
func (w *Wizard) GoTo(target Step) error {
	if target < StepExpenses || target > StepReview {
		return fmt.Errorf("unknown step %d", int(target))
	}
	if target > w.step {
		if err := w.guardUpTo(target); err != nil {
			return err
		}
	}
	w.step = target
	return nil
}

// InitializeEdit seeds the wizard from a persisted set of refund items,
// optionally under a group, and jumps to the review step. It runs at most
// once per wizard; later calls are no-ops. If any referenced transaction
// cannot be resolved, nothing happens and a later call may retry.
func (w *Wizard) InitializeEdit(ctx context.Context, items []model.RefundItem, groupID string) error {
	if w.initialized || len(items) == 0 {
		return nil
	}

	expenseIDs := distinctIDs(items, func(it model.RefundItem) string { return it.ExpenseTransactionID })
	incomeIDs := distinctIDs(items, func(it model.RefundItem) string { return it.IncomeTransactionID })

	resolved, err := w.source.GetTransactionsByIDs(ctx, append(append([]string{}, expenseIDs...), incomeIDs...))
	if err != nil {
		return err
	}
	byID := make(map[string]model.Transaction, len(resolved))
	for _, tx := range resolved {
		byID[tx.ID] = tx
	}
	for _, id := range expenseIDs {
		if _, ok := byID[id]; !ok {
			return nil
		}
	}
	for _, id := range incomeIDs {
		if _, ok := byID[id]; !ok {
			return nil
		}
	}

	w.selectedExpenses = nil
	for _, id := range expenseIDs {
		w.selectedExpenses = append(w.selectedExpenses, byID[id])
	}
	w.selectedIncomes = nil
	for _, id := range incomeIDs {
		w.selectedIncomes = append(w.selectedIncomes, byID[id])
	}

	w.seed = make(map[string]float64, len(items))
	for _, it := range items {
		w.seed[PairKey(it.ExpenseTransactionID, it.IncomeTransactionID)] = it.Amount
	}
	w.regenerate()

	w.editing = true
	w.groupID = groupID
	w.existingItems = append([]model.RefundItem{}, items...)
	w.groupName = deriveGroupName(w.selectedExpenses)
	w.groupDescription = ""
	w.step = StepReview
	w.initialized = true

	return nil
}

// Submit hands the active allocations to the submitter. On success all wizard
// state resets; on failure the state is left untouched so the user can retry.
func (w *Wizard) Submit(ctx context.Context) error {
	if err := w.guardUpTo(StepReview); err != nil {
		return err
	}

	expenses := make(map[string]model.Transaction, len(w.selectedExpenses))
	for _, tx := range w.selectedExpenses {
		expenses[tx.ID] = tx
	}

	plan := SubmitPlan{
		GroupID:          w.groupID,
		GroupName:        w.groupName,
		GroupDescription: w.groupDescription,
		Editing:          w.editing,
		ExistingItems:    w.existingItems,
		Allocations:      w.matrix.ActiveItems(),
		Expenses:         expenses,
	}

	if err := w.submitter.Submit(ctx, plan); err != nil {
		return err
	}

	w.Reset()
	return nil
}

// Reset discards all wizard state and returns to the expenses step.
// An in-flight submission is not cancelled; its outcome is simply no longer
// reflected here.
func (w *Wizard) Reset() {
	w.step = StepExpenses
	w.expenseList = candidateList{txType: model.TypeExpense}
	w.incomeList = candidateList{txType: model.TypeIncome}
	w.selectedExpenses = nil
	w.selectedIncomes = nil
	w.matrix = NewMatrix()
	w.groupName = ""
	w.groupDescription = ""
	w.editing = false
	w.groupID = ""
	w.existingItems = nil
	w.seed = nil
	w.initialized = false
}

func (w *Wizard) regenerate() {
	w.matrix.Regenerate(w.selectedExpenses, w.selectedIncomes, w.seed)
}

// deriveGroupName builds the edit-mode group name draft from the expense
// descriptions. The persisted group name is not re-fetched during
// initialization.
func deriveGroupName(expenses []model.Transaction) string {
	if len(expenses) == 0 {
		return ""
	}
	descriptions := make([]string, 0, len(expenses))
	for _, tx := range expenses {
		descriptions = append(descriptions, tx.Description)
	}
	return "Refund - " + strings.Join(descriptions, ", ")
}

func toggle(selection []model.Transaction, tx model.Transaction) []model.Transaction {
	for i, existing := range selection {
		if existing.ID == tx.ID {
			return append(selection[:i:i], selection[i+1:]...)
		}
	}
	return append(selection, tx)
}

func distinctIDs(items []model.RefundItem, pick func(model.RefundItem) string) []string {
	seen := map[string]bool{}
	ids := []string{}
	for _, it := range items {
		id := pick(it)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
