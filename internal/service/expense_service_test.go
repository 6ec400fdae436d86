package service

import (
	"context"
	"errors"
	"testing"

	"bizdesk/internal/repository"
)

func TestCreateCategoryDuplicate(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewExpenseService(db)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, 1, "运费", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, 1, "运费", nil); !errors.Is(err, repository.ErrCategoryDuplicate) {
		t.Fatalf("expected ErrCategoryDuplicate, got %v", err)
	}
	// 不同用户可以同名
	if _, err := svc.CreateCategory(ctx, 2, "运费", nil); err != nil {
		t.Fatalf("cross-user same name: %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewExpenseService(db)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, 1, "房租", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateExpense(ctx, 1, &CreateExpenseRequest{
		CategoryID:    category.ID,
		Description:   "仓库月租",
		Amount:        3000,
		PaymentMethod: "transfer",
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := svc.DeleteCategory(ctx, 1, category.ID); !errors.Is(err, repository.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}

func TestCreateExpenseUnknownCategory(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewExpenseService(db)

	_, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		CategoryID:    999,
		Description:   "莫名支出",
		Amount:        100,
		PaymentMethod: "cash",
	})
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateExpenseCrossUserCategory(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewExpenseService(db)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, 1, "水电", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	_, err = svc.CreateExpense(ctx, 2, &CreateExpenseRequest{
		CategoryID:    category.ID,
		Description:   "电费",
		Amount:        200,
		PaymentMethod: "cash",
	})
	if !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestExpenseStatsByCategory(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewExpenseService(db)
	ctx := context.Background()

	rent, err := svc.CreateCategory(ctx, 1, "房租", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	freight, err := svc.CreateCategory(ctx, 1, "运费", nil)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	for _, e := range []CreateExpenseRequest{
		{CategoryID: rent.ID, Description: "仓库月租", Amount: 3000, PaymentMethod: "transfer"},
		{CategoryID: freight.ID, Description: "冷链运输", Amount: 800, PaymentMethod: "cash"},
		{CategoryID: freight.ID, Description: "市内配送", Amount: 200, PaymentMethod: "cash"},
	} {
		req := e
		if _, err := svc.CreateExpense(ctx, 1, &req); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	stats, err := svc.GetStats(ctx, 1, PeriodMonthly)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalExpenses != 4000 {
		t.Fatalf("expected total 4000, got %v", stats.TotalExpenses)
	}
	if stats.Count != 3 {
		t.Fatalf("expected 3 expenses, got %d", stats.Count)
	}
	if stats.ExpensesByCategory["运费"] != 1000 {
		t.Fatalf("expected 运费 1000, got %v", stats.ExpensesByCategory["运费"])
	}
	if stats.ExpensesByCategory["房租"] != 3000 {
		t.Fatalf("expected 房租 3000, got %v", stats.ExpensesByCategory["房租"])
	}
}
