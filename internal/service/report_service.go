package service

import (
	"context"
	"time"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type ReportService struct {
	saleRepo    *repository.SaleRepository
	productRepo *repository.ProductRepository
	expenseRepo *repository.ExpenseRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		saleRepo:    repository.NewSaleRepository(db),
		productRepo: repository.NewProductRepository(db),
		expenseRepo: repository.NewExpenseRepository(db),
	}
}

// ============================================================
// 销售报表
// ============================================================

type SalesReportTotals struct {
	Revenue   float64 `json:"revenue"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
	Count     int     `json:"count"`
}

type SalesReport struct {
	Sales  []*model.Sale     `json:"sales"`
	Totals SalesReportTotals `json:"totals"`
}

func (s *ReportService) GetSalesReport(ctx context.Context, userID int64, start, end time.Time) (*SalesReport, error) {
	sales, err := s.saleRepo.ListCreatedBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{Sales: sales}
	report.Totals.Count = len(sales)
	for _, sale := range sales {
		report.Totals.Revenue += sale.TotalAmount
		report.Totals.Paid += sale.AmountPaid
		report.Totals.Remaining += sale.RemainingAmount
	}
	return report, nil
}

// ============================================================
// 库存报表
// ============================================================

type InventoryReportTotals struct {
	Value            float64 `json:"value"`             // 按成本价计的库存价值
	PotentialRevenue float64 `json:"potential_revenue"` // 按售价计的潜在收入
	PotentialProfit  float64 `json:"potential_profit"`
	Count            int     `json:"count"`
}

type InventoryReport struct {
	Products []*model.Product      `json:"products"`
	Totals   InventoryReportTotals `json:"totals"`
}

func (s *ReportService) GetInventoryReport(ctx context.Context, userID int64) (*InventoryReport, error) {
	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &InventoryReport{Products: products}
	report.Totals.Count = len(products)
	for _, p := range products {
		report.Totals.Value += p.QuantityBox*p.CostPerBox + p.QuantityKg*p.CostPerKg
		report.Totals.PotentialRevenue += p.QuantityBox*p.PricePerBox + p.QuantityKg*p.PricePerKg
	}
	report.Totals.PotentialProfit = report.Totals.PotentialRevenue - report.Totals.Value
	return report, nil
}

// ============================================================
// 支出报表
// ============================================================

type ExpenseWithCategory struct {
	*model.Expense
	CategoryName string `json:"category_name"`
}

type ExpenseReportTotals struct {
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

type ExpenseReport struct {
	Expenses []*ExpenseWithCategory `json:"expenses"`
	Totals   ExpenseReportTotals    `json:"totals"`
}

func (s *ReportService) GetExpenseReport(ctx context.Context, userID int64, start, end time.Time) (*ExpenseReport, error) {
	expenses, err := s.expenseRepo.List(ctx, userID, 0, &start, &end)
	if err != nil {
		return nil, err
	}

	categories, err := s.expenseRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	report := &ExpenseReport{}
	report.Totals.Count = len(expenses)
	for _, e := range expenses {
		name := categoryNames[e.CategoryID]
		if name == "" {
			name = "未分类"
		}
		report.Expenses = append(report.Expenses, &ExpenseWithCategory{Expense: e, CategoryName: name})
		report.Totals.Amount += e.Amount
	}
	return report, nil
}
