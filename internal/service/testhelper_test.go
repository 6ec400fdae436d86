package service

import (
	"context"
	"fmt"
	"testing"

	"bizdesk/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&model.Product{},
		&model.Sale{},
		&model.SalesAudit{},
		&model.Customer{},
		&model.BusinessTransaction{},
		&model.Deposit{},
		&model.ExpenseCategory{},
		&model.Expense{},
		&model.Folder{},
		&model.Document{},
		&model.Setting{},
		&model.Staff{},
		&model.OutboxMessage{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, userID int64, sku string, boxes float64) *model.Product {
	p := &model.Product{
		UserID:      userID,
		Name:        "红富士苹果",
		SKU:         sku,
		QuantityBox: boxes,
		QuantityKg:  50,
		CostPerBox:  60,
		CostPerKg:   6,
		PricePerBox: 100,
		PricePerKg:  10,
		MinStockBox: 2,
		IsActive:    true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func createTestSale(t *testing.T, db *gorm.DB, userID, productID int64, boxes, paid float64) *model.Sale {
	svc := NewSaleService(db, nil)
	sale, err := svc.CreateSale(context.Background(), userID, &CreateSaleRequest{
		ProductID:     productID,
		BoxesQuantity: boxes,
		BoxPrice:      100,
		AmountPaid:    paid,
		PaymentMethod: "cash",
		ClientName:    "老王",
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	return sale
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
