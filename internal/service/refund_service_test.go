package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/api/request"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/refund"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/repository"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/testutil"
)

// TestRefundService_Submit_Create tests the fresh-create submission path.
//
// WHY: Submission turns the wizard's allocation set into persisted rows: one
// item per pair, grouped only when the refund spans multiple transactions, and
// each item describing which expense it reimburses and what share of it.
func TestRefundService_Submit_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("single pair creates one ungrouped item", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 75)

		plan := refund.SubmitPlan{
			Allocations: []refund.Item{
				{ExpenseID: exp.ID, IncomeID: inc.ID, Amount: 30, MaxAmount: 75},
			},
			Expenses: map[string]model.Transaction{exp.ID: exp},
		}

		// Execute
		if err := svc.Submit(ctx, plan); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}

		// Assert
		refundRepo := repository.NewRefundRepository(db)
		items, err := refundRepo.GetItemsForTransaction(exp.ID)
		if err != nil {
			t.Fatalf("GetItemsForTransaction() returned unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(items))
		}
		if items[0].Amount != 30 {
			t.Errorf("Expected amount 30, got %v", items[0].Amount)
		}
		if items[0].RefundGroupID != "" {
			t.Errorf("Expected no group, got %q", items[0].RefundGroupID)
		}
		if items[0].Description != "Refund: Dinner (30.0%)" {
			t.Errorf("Unexpected description: %q", items[0].Description)
		}
	})

	t.Run("multi pair refund creates a group and grouped items", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp1 := testutil.CreateExpense(t, db, account.ID, "Hotel", 200)
		exp2 := testutil.CreateExpense(t, db, account.ID, "Taxi", 40)
		inc := testutil.CreateIncome(t, db, account.ID, "Trip reimbursement", 120)

		plan := refund.SubmitPlan{
			GroupName:        "Business trip",
			GroupDescription: "March conference",
			Allocations: []refund.Item{
				{ExpenseID: exp1.ID, IncomeID: inc.ID, Amount: 100},
				{ExpenseID: exp2.ID, IncomeID: inc.ID, Amount: 20},
			},
			Expenses: map[string]model.Transaction{exp1.ID: exp1, exp2.ID: exp2},
		}

		// Execute
		if err := svc.Submit(ctx, plan); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}

		// Assert
		refundRepo := repository.NewRefundRepository(db)
		items, err := refundRepo.GetItemsForTransaction(inc.ID)
		if err != nil {
			t.Fatalf("GetItemsForTransaction() returned unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		groupID := items[0].RefundGroupID
		if groupID == "" {
			t.Fatal("Expected items to carry a group")
		}
		for _, it := range items {
			if it.RefundGroupID != groupID {
				t.Errorf("Expected all items in group %s, got %s", groupID, it.RefundGroupID)
			}
		}
		group, err := refundRepo.GetGroup(groupID)
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}
		if group.Name != "Business trip" || group.Description != "March conference" {
			t.Errorf("Unexpected group: %+v", group)
		}
	})

	t.Run("multi pair refund without a name is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp1 := testutil.CreateExpense(t, db, account.ID, "Hotel", 200)
		exp2 := testutil.CreateExpense(t, db, account.ID, "Taxi", 40)
		inc := testutil.CreateIncome(t, db, account.ID, "Trip reimbursement", 120)

		plan := refund.SubmitPlan{
			Allocations: []refund.Item{
				{ExpenseID: exp1.ID, IncomeID: inc.ID, Amount: 100},
				{ExpenseID: exp2.ID, IncomeID: inc.ID, Amount: 20},
			},
			Expenses: map[string]model.Transaction{exp1.ID: exp1, exp2.ID: exp2},
		}

		if err := svc.Submit(ctx, plan); !errors.Is(err, apperrors.ErrGroupNameRequired) {
			t.Errorf("Expected ErrGroupNameRequired, got %v", err)
		}
	})

	t.Run("empty allocation set is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)

		if err := svc.Submit(ctx, refund.SubmitPlan{}); !errors.Is(err, apperrors.ErrNoActiveAllocations) {
			t.Errorf("Expected ErrNoActiveAllocations, got %v", err)
		}
	})

	t.Run("percentage reflects the share of the expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Pharmacy", 60)
		inc := testutil.CreateIncome(t, db, account.ID, "Insurance payout", 45)

		plan := refund.SubmitPlan{
			Allocations: []refund.Item{
				{ExpenseID: exp.ID, IncomeID: inc.ID, Amount: 45},
			},
			Expenses: map[string]model.Transaction{exp.ID: exp},
		}

		if err := svc.Submit(ctx, plan); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}

		refundRepo := repository.NewRefundRepository(db)
		items, _ := refundRepo.GetItemsForTransaction(exp.ID)
		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(items))
		}
		if items[0].Description != "Refund: Pharmacy (75.0%)" {
			t.Errorf("Unexpected description: %q", items[0].Description)
		}
	})
}

// TestRefundService_Submit_Edit tests the reconciliation path.
//
// WHY: Editing must diff against the persisted items by (expense, income)
// pair: changed amounts update in place, vanished pairs are deleted, new pairs
// are created, and untouched pairs keep their original rows.
func TestRefundService_Submit_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("updates, deletes and creates by pair", func(t *testing.T) {
		// Setup: persisted items (e1,i1)=10 and (e1,i2)=20 under a group.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dentist", 100)
		inc1 := testutil.CreateIncome(t, db, account.ID, "Insurance A", 50)
		inc2 := testutil.CreateIncome(t, db, account.ID, "Insurance B", 50)
		inc3 := testutil.CreateIncome(t, db, account.ID, "Insurance C", 50)
		group := testutil.NewRefundGroup().WithName("Dentist visit").Build(t, db)
		item1 := testutil.NewRefundItem(exp.ID, inc1.ID).WithAmount(10).WithGroup(group.ID).Build(t, db)
		item2 := testutil.NewRefundItem(exp.ID, inc2.ID).WithAmount(20).WithGroup(group.ID).Build(t, db)

		plan := refund.SubmitPlan{
			GroupID:   group.ID,
			GroupName: "Dentist visit",
			Editing:   true,
			ExistingItems: []model.RefundItem{
				item1,
				item2,
			},
			Allocations: []refund.Item{
				{ExpenseID: exp.ID, IncomeID: inc1.ID, Amount: 15}, // changed
				{ExpenseID: exp.ID, IncomeID: inc3.ID, Amount: 5},  // new pair
				// (e, inc2) vanished
			},
			Expenses: map[string]model.Transaction{exp.ID: exp},
		}

		// Execute
		if err := svc.Submit(ctx, plan); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}

		// Assert
		refundRepo := repository.NewRefundRepository(db)
		items, err := refundRepo.GetItemsByGroup(group.ID)
		if err != nil {
			t.Fatalf("GetItemsByGroup() returned unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items after reconcile, got %d", len(items))
		}

		byIncome := map[string]model.RefundItem{}
		for _, it := range items {
			byIncome[it.IncomeTransactionID] = it
		}

		updated, ok := byIncome[inc1.ID]
		if !ok {
			t.Fatal("Expected (exp, inc1) to survive")
		}
		if updated.ID != item1.ID {
			t.Errorf("Expected (exp, inc1) updated in place, got new row %s", updated.ID)
		}
		if updated.Amount != 15 {
			t.Errorf("Expected amount 15, got %v", updated.Amount)
		}

		if _, ok := byIncome[inc2.ID]; ok {
			t.Error("Expected (exp, inc2) deleted")
		}

		created, ok := byIncome[inc3.ID]
		if !ok {
			t.Fatal("Expected (exp, inc3) created")
		}
		if created.Amount != 5 {
			t.Errorf("Expected amount 5, got %v", created.Amount)
		}
	})

	t.Run("unchanged pairs keep their rows untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dentist", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Insurance", 50)
		group := testutil.NewRefundGroup().Build(t, db)
		item := testutil.NewRefundItem(exp.ID, inc.ID).
			WithAmount(10).
			WithDescription("Refund: Dentist (10.0%)").
			WithGroup(group.ID).
			Build(t, db)

		plan := refund.SubmitPlan{
			GroupID:       group.ID,
			GroupName:     "Dentist visit",
			Editing:       true,
			ExistingItems: []model.RefundItem{item},
			Allocations: []refund.Item{
				{ExpenseID: exp.ID, IncomeID: inc.ID, Amount: 10},
			},
			Expenses: map[string]model.Transaction{exp.ID: exp},
		}

		if err := svc.Submit(ctx, plan); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}

		refundRepo := repository.NewRefundRepository(db)
		after, err := refundRepo.GetItem(item.ID)
		if err != nil {
			t.Fatalf("GetItem() returned unexpected error: %v", err)
		}
		if after.ID == "" {
			t.Fatal("Expected original row to survive")
		}
		if after.Amount != 10 || after.Description != "Refund: Dentist (10.0%)" {
			t.Errorf("Expected row untouched, got %+v", after)
		}
	})

	t.Run("editing a grouped refund updates the group even for one pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dentist", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Insurance", 50)
		group := testutil.NewRefundGroup().WithName("Old name").Build(t, db)
		item := testutil.NewRefundItem(exp.ID, inc.ID).WithAmount(10).WithGroup(group.ID).Build(t, db)

		plan := refund.SubmitPlan{
			GroupID:       group.ID,
			GroupName:     "New name",
			Editing:       true,
			ExistingItems: []model.RefundItem{item},
			Allocations: []refund.Item{
				{ExpenseID: exp.ID, IncomeID: inc.ID, Amount: 10},
			},
			Expenses: map[string]model.Transaction{exp.ID: exp},
		}

		if err := svc.Submit(ctx, plan); err != nil {
			t.Fatalf("Submit() returned unexpected error: %v", err)
		}

		refundRepo := repository.NewRefundRepository(db)
		after, err := refundRepo.GetGroup(group.ID)
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}
		if after.Name != "New name" {
			t.Errorf("Expected group renamed, got %q", after.Name)
		}
	})

	t.Run("editing an unknown group fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dentist", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Insurance", 50)

		plan := refund.SubmitPlan{
			GroupID:   testutil.MakeID(),
			GroupName: "Ghost group",
			Editing:   true,
			Allocations: []refund.Item{
				{ExpenseID: exp.ID, IncomeID: inc.ID, Amount: 10},
			},
			Expenses: map[string]model.Transaction{exp.ID: exp},
		}

		if err := svc.Submit(ctx, plan); !errors.Is(err, apperrors.ErrRefundGroupNotFound) {
			t.Errorf("Expected ErrRefundGroupNotFound, got %v", err)
		}
	})
}

// TestRefundService_WizardEndToEnd drives a full wizard flow against the real
// service and database.
//
// WHY: The wizard, the engine and the submission adapter are designed as one
// flow; this covers the seams between them with real persistence.
func TestRefundService_WizardEndToEnd(t *testing.T) {
	ctx := context.Background()

	// Setup
	db := testutil.SetupTestDB(t)
	refundSvc := testutil.NewTestRefundService(t, db)
	txSvc := testutil.NewTestTransactionService(t, db)
	account := testutil.CreateAccount(t, db, "Checking")
	exp1 := testutil.CreateExpense(t, db, account.ID, "Hotel", 200)
	exp2 := testutil.CreateExpense(t, db, account.ID, "Taxi", 40)
	inc := testutil.CreateIncome(t, db, account.ID, "Employer reimbursement", 150)

	w := refund.NewWizard(txSvc, refundSvc)

	// Walk the flow: search, select, allocate, name, submit.
	if err := w.SearchExpenses(ctx, ""); err != nil {
		t.Fatalf("SearchExpenses() returned unexpected error: %v", err)
	}
	if len(w.ExpenseCandidates()) != 2 {
		t.Fatalf("Expected 2 expense candidates, got %d", len(w.ExpenseCandidates()))
	}
	if err := w.ToggleExpense(exp1); err != nil {
		t.Fatalf("ToggleExpense() returned unexpected error: %v", err)
	}
	if err := w.ToggleExpense(exp2); err != nil {
		t.Fatalf("ToggleExpense() returned unexpected error: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next() returned unexpected error: %v", err)
	}

	if err := w.SearchIncomes(ctx, "Employer"); err != nil {
		t.Fatalf("SearchIncomes() returned unexpected error: %v", err)
	}
	if len(w.IncomeCandidates()) != 1 {
		t.Fatalf("Expected 1 income candidate, got %d", len(w.IncomeCandidates()))
	}
	if err := w.ToggleIncome(inc); err != nil {
		t.Fatalf("ToggleIncome() returned unexpected error: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next() returned unexpected error: %v", err)
	}

	w.SetAllocation(exp1.ID, inc.ID, 120)
	w.SetAllocation(exp2.ID, inc.ID, 40) // clamps to the 30 left on the income

	if got := w.Matrix().TotalAllocated(); got != 150 {
		t.Fatalf("Expected total allocation 150, got %v", got)
	}

	w.SetGroupName("March business trip")
	if err := w.Next(); err != nil {
		t.Fatalf("Next() to review returned unexpected error: %v", err)
	}

	if err := w.Submit(ctx); err != nil {
		t.Fatalf("Submit() returned unexpected error: %v", err)
	}

	// Assert: two grouped items, income fully consumed.
	refundRepo := repository.NewRefundRepository(db)
	items, err := refundRepo.GetItemsForTransaction(inc.ID)
	if err != nil {
		t.Fatalf("GetItemsForTransaction() returned unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	var total float64
	for _, it := range items {
		total += it.Amount
		if it.RefundGroupID == "" {
			t.Error("Expected grouped items")
		}
	}
	if total != 150 {
		t.Errorf("Expected 150 allocated in total, got %v", total)
	}

	// The transaction view now reports the refunded share.
	enriched, err := txSvc.GetTransaction(exp1.ID)
	if err != nil {
		t.Fatalf("GetTransaction() returned unexpected error: %v", err)
	}
	if enriched.RefundedAmount != 120 {
		t.Errorf("Expected refunded amount 120, got %v", enriched.RefundedAmount)
	}
}

// TestRefundService_CreateItem tests directly-created refund items.
//
// WHY: Items can also be created outside the wizard; the service must enforce
// the same role and capacity invariants the engine guarantees in-memory.
func TestRefundService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("enforces transaction roles", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 75)

		_, err := svc.CreateItem(ctx, request.CreateRefundItemRequest{
			Amount:               10,
			ExpenseTransactionID: inc.ID, // swapped
			IncomeTransactionID:  exp.ID,
		})

		if !errors.Is(err, apperrors.ErrTransactionRole) {
			t.Errorf("Expected ErrTransactionRole, got %v", err)
		}
	})

	t.Run("enforces expense capacity across existing items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc1 := testutil.CreateIncome(t, db, account.ID, "Reimbursement A", 80)
		inc2 := testutil.CreateIncome(t, db, account.ID, "Reimbursement B", 80)
		testutil.NewRefundItem(exp.ID, inc1.ID).WithAmount(70).Build(t, db)

		_, err := svc.CreateItem(ctx, request.CreateRefundItemRequest{
			Amount:               40, // only 30 left on the expense
			ExpenseTransactionID: exp.ID,
			IncomeTransactionID:  inc2.ID,
		})

		if !errors.Is(err, apperrors.ErrAllocationExceedsCapacity) {
			t.Errorf("Expected ErrAllocationExceedsCapacity, got %v", err)
		}
	})

	t.Run("missing transaction yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 75)

		_, err := svc.CreateItem(ctx, request.CreateRefundItemRequest{
			Amount:               10,
			ExpenseTransactionID: testutil.MakeID(),
			IncomeTransactionID:  inc.ID,
		})

		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("synthesizes a description when none given", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 75)

		item, err := svc.CreateItem(ctx, request.CreateRefundItemRequest{
			Amount:               25,
			ExpenseTransactionID: exp.ID,
			IncomeTransactionID:  inc.ID,
		})
		if err != nil {
			t.Fatalf("CreateItem() returned unexpected error: %v", err)
		}

		if item.Description != "Refund: Dinner (25.0%)" {
			t.Errorf("Unexpected description: %q", item.Description)
		}
	})
}

// TestRefundService_UpdateItem tests amount changes on existing items.
func TestRefundService_UpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("excludes the item's own amount from the capacity check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 100)
		item := testutil.NewRefundItem(exp.ID, inc.ID).WithAmount(90).Build(t, db)

		// 95 fits only if the item's previous 90 is excluded.
		updated, err := svc.UpdateItem(ctx, item.ID, request.UpdateRefundItemRequest{Amount: 95})
		if err != nil {
			t.Fatalf("UpdateItem() returned unexpected error: %v", err)
		}
		if updated.Amount != 95 {
			t.Errorf("Expected 95, got %v", updated.Amount)
		}
	})

	t.Run("unknown item yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)

		_, err := svc.UpdateItem(ctx, testutil.MakeID(), request.UpdateRefundItemRequest{Amount: 5})

		if !errors.Is(err, apperrors.ErrRefundItemNotFound) {
			t.Errorf("Expected ErrRefundItemNotFound, got %v", err)
		}
	})
}

// TestRefundService_Groups tests group CRUD.
func TestRefundService_Groups(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns the group with its items", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 75)
		group := testutil.NewRefundGroup().WithName("Dinner split").Build(t, db)
		testutil.NewRefundItem(exp.ID, inc.ID).WithAmount(30).WithGroup(group.ID).Build(t, db)

		detail, err := svc.GetGroup(group.ID)
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}

		if detail.Name != "Dinner split" {
			t.Errorf("Expected group name, got %q", detail.Name)
		}
		if len(detail.Items) != 1 {
			t.Errorf("Expected 1 item, got %d", len(detail.Items))
		}
	})

	t.Run("deleting a group keeps its items ungrouped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)
		account := testutil.CreateAccount(t, db, "Checking")
		exp := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		inc := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 75)
		group := testutil.NewRefundGroup().Build(t, db)
		item := testutil.NewRefundItem(exp.ID, inc.ID).WithAmount(30).WithGroup(group.ID).Build(t, db)

		if err := svc.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup() returned unexpected error: %v", err)
		}

		refundRepo := repository.NewRefundRepository(db)
		after, err := refundRepo.GetItem(item.ID)
		if err != nil {
			t.Fatalf("GetItem() returned unexpected error: %v", err)
		}
		if after.ID == "" {
			t.Fatal("Expected item to survive group deletion")
		}
		if after.RefundGroupID != "" {
			t.Errorf("Expected group reference cleared, got %q", after.RefundGroupID)
		}
	})

	t.Run("unknown group yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRefundService(t, db)

		if _, err := svc.GetGroup(testutil.MakeID()); !errors.Is(err, apperrors.ErrRefundGroupNotFound) {
			t.Errorf("Expected ErrRefundGroupNotFound, got %v", err)
		}
		if err := svc.DeleteGroup(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrRefundGroupNotFound) {
			t.Errorf("Expected ErrRefundGroupNotFound, got %v", err)
		}
	})
}
