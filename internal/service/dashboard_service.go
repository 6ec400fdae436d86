package service

import (
	"context"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type DashboardService struct {
	saleRepo    *repository.SaleRepository
	expenseRepo *repository.ExpenseRepository
	productRepo *repository.ProductRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		saleRepo:    repository.NewSaleRepository(db),
		expenseRepo: repository.NewExpenseRepository(db),
		productRepo: repository.NewProductRepository(db),
	}
}

type DashboardStats struct {
	TotalSales       int              `json:"total_sales"`
	TotalRevenue     float64          `json:"total_revenue"`
	TotalExpenses    float64          `json:"total_expenses"`
	TotalProfit      float64          `json:"total_profit"`
	LowStockCount    int              `json:"low_stock_count"`
	LowStockProducts []*model.Product `json:"low_stock_products"`
	RecentSales      []*model.Sale    `json:"recent_sales"`
}

// GetStats 首页看板：周期内销量/实收/支出/利润，加低库存与最近销售
//
// 利润 = 实收 - 销货成本 - 支出
// 销货成本由销售单上的单价与单件利润反推（price - profit 即成本）
func (s *DashboardService) GetStats(ctx context.Context, userID int64, period string) (*DashboardStats, error) {
	start, err := periodStart(period)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListCreatedBetween(ctx, userID, start, timeNow())
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListSpentSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalSales:    len(sales),
		LowStockCount: len(lowStock),
	}

	var costOfGoods float64
	for _, sale := range sales {
		stats.TotalRevenue += sale.AmountPaid
		costOfGoods += sale.BoxesQuantity*(sale.BoxPrice-sale.ProfitPerBox) +
			sale.KgQuantity*(sale.KgPrice-sale.ProfitPerKg)
	}
	for _, e := range expenses {
		stats.TotalExpenses += e.Amount
	}
	stats.TotalProfit = stats.TotalRevenue - costOfGoods - stats.TotalExpenses

	// 低库存取前5个、最近销售取前5笔
	if len(lowStock) > 5 {
		lowStock = lowStock[:5]
	}
	stats.LowStockProducts = lowStock
	if len(sales) > 5 {
		sales = sales[:5]
	}
	stats.RecentSales = sales

	return stats, nil
}
