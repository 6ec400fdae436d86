package service

import (
	"context"
	"testing"

	"bizdesk/internal/model"
)

func TestCreateSaleDeductsStockAndKeepsInvariant(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S1", 10)

	svc := NewSaleService(db, nil)
	sale, err := svc.CreateSale(context.Background(), 1, &CreateSaleRequest{
		ProductID:     product.ID,
		BoxesQuantity: 4,
		BoxPrice:      100,
		AmountPaid:    150,
		PaymentMethod: "cash",
		ClientName:    "老王",
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if sale.TotalAmount != 400 {
		t.Fatalf("expected total 400, got %v", sale.TotalAmount)
	}
	if sale.AmountPaid+sale.RemainingAmount != sale.TotalAmount {
		t.Fatalf("invariant broken: paid=%v remaining=%v total=%v",
			sale.AmountPaid, sale.RemainingAmount, sale.TotalAmount)
	}
	if sale.PaymentStatus != model.PaymentStatusPartial {
		t.Fatalf("expected partial, got %s", sale.PaymentStatus)
	}
	if sale.ProfitPerBox != 40 {
		t.Fatalf("expected profit 40/box, got %v", sale.ProfitPerBox)
	}

	var reloaded model.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.QuantityBox != 6 {
		t.Fatalf("expected stock 6, got %v", reloaded.QuantityBox)
	}

	// 同事务里的流水和发件箱事件
	var transCount int64
	if err := db.Model(&model.BusinessTransaction{}).Where("sale_id = ?", sale.ID).Count(&transCount).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if transCount != 1 {
		t.Fatalf("expected 1 transaction, got %d", transCount)
	}
	var msgCount int64
	if err := db.Model(&model.OutboxMessage{}).Where("message_key = ?", sale.SaleNo).Count(&msgCount).Error; err != nil {
		t.Fatalf("count outbox: %v", err)
	}
	if msgCount != 1 {
		t.Fatalf("expected 1 outbox message, got %d", msgCount)
	}
}

func TestCreateSaleStockFloorsAtZero(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S2", 3)

	svc := NewSaleService(db, nil)
	if _, err := svc.CreateSale(context.Background(), 1, &CreateSaleRequest{
		ProductID:     product.ID,
		BoxesQuantity: 10,
		BoxPrice:      100,
		AmountPaid:    1000,
		PaymentMethod: "cash",
		ClientName:    "老王",
	}); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	var reloaded model.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.QuantityBox != 0 {
		t.Fatalf("expected stock floored at 0, got %v", reloaded.QuantityBox)
	}
}

func TestCreateSaleOverpaymentClamped(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S3", 10)

	svc := NewSaleService(db, nil)
	sale, err := svc.CreateSale(context.Background(), 1, &CreateSaleRequest{
		ProductID:     product.ID,
		BoxesQuantity: 2,
		BoxPrice:      100,
		AmountPaid:    999,
		PaymentMethod: "cash",
		ClientName:    "老王",
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if sale.AmountPaid != 200 || sale.RemainingAmount != 0 {
		t.Fatalf("overpayment not clamped: paid=%v remaining=%v", sale.AmountPaid, sale.RemainingAmount)
	}
	if sale.PaymentStatus != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", sale.PaymentStatus)
	}
}

func TestCreateSaleRecordsCustomerDebt(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S4", 10)
	customer := &model.Customer{UserID: 1, Name: "张记水果店", IsActive: true}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	svc := NewSaleService(db, nil)
	if _, err := svc.CreateSale(context.Background(), 1, &CreateSaleRequest{
		ProductID:     product.ID,
		BoxesQuantity: 4,
		BoxPrice:      100,
		AmountPaid:    100,
		PaymentMethod: "credit",
		CustomerID:    customer.ID,
		ClientName:    "张记水果店",
	}); err != nil {
		t.Fatalf("create sale: %v", err)
	}

	var reloaded model.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	if reloaded.Balance != 300 {
		t.Fatalf("expected debt 300, got %v", reloaded.Balance)
	}
}

func TestAddPaymentSettlesDebt(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S5", 10)
	customer := &model.Customer{UserID: 1, Name: "张记水果店", IsActive: true}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	svc := NewSaleService(db, nil)
	ctx := context.Background()
	sale, err := svc.CreateSale(ctx, 1, &CreateSaleRequest{
		ProductID:     product.ID,
		BoxesQuantity: 4,
		BoxPrice:      100,
		AmountPaid:    100,
		PaymentMethod: "credit",
		CustomerID:    customer.ID,
		ClientName:    "张记水果店",
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	// 多缴也只收到结清为止
	updated, err := svc.AddPayment(ctx, 1, sale.ID, 500, "cash")
	if err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if updated.AmountPaid != 400 || updated.RemainingAmount != 0 {
		t.Fatalf("bad settlement: paid=%v remaining=%v", updated.AmountPaid, updated.RemainingAmount)
	}
	if updated.PaymentStatus != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.PaymentStatus)
	}

	var reloaded model.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	if reloaded.Balance != 0 {
		t.Fatalf("expected debt cleared, got %v", reloaded.Balance)
	}
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S6", 10)
	sale := createTestSale(t, db, 1, product.ID, 2, 100)

	svc := NewSaleService(db, nil)
	if _, err := svc.AddPayment(context.Background(), 1, sale.ID, 0, "cash"); err == nil {
		t.Fatalf("expected error for zero amount")
	}
}

func TestGetSaleStats(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-S7", 100)
	createTestSale(t, db, 1, product.ID, 2, 200)
	createTestSale(t, db, 1, product.ID, 3, 100)
	// 别人的单子不计入
	other := seedProduct(t, db, 2, "SKU-S8", 100)
	createTestSale(t, db, 2, other.ID, 5, 500)

	svc := NewSaleService(db, nil)
	stats, err := svc.GetStats(context.Background(), 1, PeriodDaily)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalSales != 2 {
		t.Fatalf("expected 2 sales, got %d", stats.TotalSales)
	}
	if stats.TotalRevenue != 300 {
		t.Fatalf("expected revenue 300, got %v", stats.TotalRevenue)
	}
	if stats.AverageOrderValue != 150 {
		t.Fatalf("expected avg 150, got %v", stats.AverageOrderValue)
	}
}
