package service

import (
	"context"
	"errors"
	"testing"

	"bizdesk/internal/repository"
)

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := setupTestDB(t, t.Name())
	seedProduct(t, db, 1, "SKU-P1", 10)

	svc := NewProductService(db)
	_, err := svc.CreateProduct(context.Background(), 1, &CreateProductRequest{
		Name: "脐橙",
		SKU:  "SKU-P1",
	})
	if !errors.Is(err, repository.ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-P2", 5)

	svc := NewProductService(db)
	updated, err := svc.AdjustStock(context.Background(), 1, product.ID, -20, -100, "盘亏核销")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if updated.QuantityBox != 0 || updated.QuantityKg != 0 {
		t.Fatalf("expected floors at 0, got box=%v kg=%v", updated.QuantityBox, updated.QuantityKg)
	}
}

func TestAdjustStockRequiresReason(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-P3", 5)

	svc := NewProductService(db)
	if _, err := svc.AdjustStock(context.Background(), 1, product.ID, 3, 0, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestAdjustStockOwnership(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-P4", 5)

	svc := NewProductService(db)
	if _, err := svc.AdjustStock(context.Background(), 2, product.ID, 3, 0, "进货"); !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestGetLowStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	low := seedProduct(t, db, 1, "SKU-P5", 1)  // 阈值 2，触发
	seedProduct(t, db, 1, "SKU-P6", 10)        // 充足
	seedProduct(t, db, 2, "SKU-P7", 0)         // 别人的

	svc := NewProductService(db)
	products, err := svc.GetLowStock(context.Background(), 1)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 low-stock product, got %d", len(products))
	}
	if products[0].ID != low.ID {
		t.Fatalf("unexpected product %d", products[0].ID)
	}
}
