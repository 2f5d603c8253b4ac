package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/model"
	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/testutil"
)

func TestTransactionHandler_ListTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("returns empty page when no transactions exist", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var page model.TransactionPage
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&page)

		if page.Items == nil {
			t.Error("Expected non-nil items array, got nil")
		}
		if page.Total != 0 {
			t.Errorf("Expected total 0, got %d", page.Total)
		}
	})

	t.Run("applies type filter from query string", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		testutil.CreateExpense(t, db, account.ID, "Groceries", 40)
		testutil.CreateIncome(t, db, account.ID, "Salary", 2000)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/transaction",
			map[string]string{"type": "expense"},
		)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var page model.TransactionPage
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&page)

		if page.Total != 1 {
			t.Errorf("Expected 1 expense, got %d", page.Total)
		}
	})

	t.Run("returns 400 for unknown type filter", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/transaction",
			map[string]string{"type": "windfall"},
		)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for non-numeric page", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/transaction",
			map[string]string{"page": "first"},
		)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_ListCategories(t *testing.T) {
	setupHandler := func(t *testing.T) *TransactionHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewTransactionHandler(testutil.NewTestTransactionService(t, db))
	}

	t.Run("returns the expense category catalogue", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/transaction/categories",
			map[string]string{"type": "expense"},
		)
		w := httptest.NewRecorder()

		handler.ListCategories(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var categories []string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&categories)

		if len(categories) == 0 {
			t.Error("Expected non-empty category catalogue")
		}
	})

	t.Run("returns 400 for missing type", func(t *testing.T) {
		handler := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction/categories", nil)
		w := httptest.NewRecorder()

		handler.ListCategories(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("returns transaction with refund linkage", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		expense := testutil.CreateExpense(t, db, account.ID, "Dinner", 100)
		income := testutil.CreateIncome(t, db, account.ID, "Reimbursement", 40)
		testutil.NewRefundItem(expense.ID, income.ID).WithAmount(40).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+expense.ID,
			map[string]string{"uuid": expense.ID},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp model.TransactionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.ID != expense.ID {
			t.Errorf("Expected transaction %s, got %s", expense.ID, resp.ID)
		}
		if resp.RefundedAmount != 40 {
			t.Errorf("Expected refunded amount 40, got %.2f", resp.RefundedAmount)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+missing,
			map[string]string{"uuid": missing},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("creates a transaction", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		body, _ := json.Marshal(map[string]any{
			"account_id":  account.ID,
			"date":        "2026-03-15",
			"description": "Pharmacy",
			"amount":      -18.50,
			"type":        "expense",
			"category":    "health",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&created)

		if created.ID == "" || created.Description != "Pharmacy" {
			t.Errorf("Unexpected created transaction: %+v", created)
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when amount sign contradicts the type", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		body, _ := json.Marshal(map[string]any{
			"account_id":  account.ID,
			"date":        "2026-03-15",
			"description": "Positive expense",
			"amount":      18.50,
			"type":        "expense",
			"category":    "health",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for unknown fields in the body", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		body, _ := json.Marshal(map[string]any{
			"account_id": account.ID,
			"date":       "2026-03-15",
			"amount":     -18.50,
			"type":       "expense",
			"category":   "health",
			"surprise":   true,
		})

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("updates the provided fields", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		tx := testutil.CreateExpense(t, db, account.ID, "Dinner", 50)

		body, _ := json.Marshal(map[string]any{"description": "Dinner with friends"})
		req := testutil.NewRequestWithBodyAndURLParams(
			http.MethodPut,
			"/api/transaction/"+tx.ID,
			body,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&updated)

		if updated.Description != "Dinner with friends" {
			t.Errorf("Expected updated description, got %q", updated.Description)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		missing := testutil.MakeID()
		body, _ := json.Marshal(map[string]any{"description": "Ghost"})
		req := testutil.NewRequestWithBodyAndURLParams(
			http.MethodPut,
			"/api/transaction/"+missing,
			body,
			map[string]string{"uuid": missing},
		)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("deletes an existing transaction", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		tx := testutil.CreateExpense(t, db, account.ID, "Dinner", 50)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+missing,
			map[string]string{"uuid": missing},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_BatchDeleteTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db)
		return NewTransactionHandler(ts), db
	}

	t.Run("reports per-ID outcome", func(t *testing.T) {
		handler, db := setupHandler(t)

		account := testutil.CreateAccount(t, db, "Checking")
		t1 := testutil.CreateExpense(t, db, account.ID, "First", 10)
		missing := testutil.MakeID()

		body, _ := json.Marshal(map[string]any{"ids": []string{t1.ID, missing}})
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/batch-delete", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.BatchDeleteTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result model.BatchDeleteResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if len(result.Deleted) != 1 || result.Deleted[0] != t1.ID {
			t.Errorf("Expected only %s deleted, got %v", t1.ID, result.Deleted)
		}
		if _, ok := result.Failed[missing]; !ok {
			t.Error("Expected the unknown ID to be reported as failed")
		}
	})

	t.Run("returns 400 for malformed IDs", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body, _ := json.Marshal(map[string]any{"ids": []string{"not-a-uuid"}})
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/batch-delete", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.BatchDeleteTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
