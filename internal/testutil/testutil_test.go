package testutil_test

import (
	"testing"

	"ledgerly/internal/errors"
	"ledgerly/internal/models"
	"ledgerly/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "transactions", "budgets", "bills", "goals", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("expected user ID to be generated")
	}

	on := testutil.Date(2024, 3, 5)
	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionKindExpense, "12.50", "food", on)
	testutil.AssertDecimal(t, tx.Amount, "12.5")

	var reloaded models.Transaction
	if err := db.First(&reloaded, "id = ?", tx.ID).Error; err != nil {
		t.Fatalf("failed to reload transaction: %v", err)
	}
	if !reloaded.OccurredOn.Equal(on) {
		t.Errorf("expected occurred_on %s, got %s", on, reloaded.OccurredOn)
	}

	budget := testutil.CreateTestBudget(t, db, user.ID, 2024, 3, "food", "100")
	testutil.AssertDecimal(t, budget.LimitAmount, "100")

	bill := testutil.CreateTestBill(t, db, user.ID, on)
	if bill.Paid {
		t.Error("expected new bill to be unpaid")
	}

	goal := testutil.CreateTestGoal(t, db, user.ID, "1000")
	testutil.AssertDecimal(t, goal.SavedAmount, "0")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
