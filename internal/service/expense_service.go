package service

import (
	"context"
	"fmt"
	"time"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{
		expenseRepo: repository.NewExpenseRepository(db),
	}
}

// ============================================================
// 支出分类
// ============================================================

func (s *ExpenseService) CreateCategory(ctx context.Context, userID int64, name string, budget *float64) (*model.ExpenseCategory, error) {
	existing, err := s.expenseRepo.GetCategoryByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repository.ErrCategoryDuplicate
	}

	category := &model.ExpenseCategory{
		UserID: userID,
		Name:   name,
		Budget: budget,
	}
	if err := s.expenseRepo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("创建支出分类失败: %w", err)
	}
	return category, nil
}

func (s *ExpenseService) ListCategories(ctx context.Context, userID int64) ([]*model.ExpenseCategory, error) {
	return s.expenseRepo.ListCategories(ctx, userID)
}

func (s *ExpenseService) GetCategory(ctx context.Context, userID, categoryID int64) (*model.ExpenseCategory, error) {
	category, err := s.expenseRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, repository.ErrAccessDenied
	}
	return category, nil
}

func (s *ExpenseService) UpdateCategory(ctx context.Context, userID, categoryID int64, name string, budget *float64) (*model.ExpenseCategory, error) {
	if _, err := s.GetCategory(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"name": name, "budget": budget}
	if err := s.expenseRepo.UpdateCategory(ctx, categoryID, updates); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetCategoryByID(ctx, categoryID)
}

// DeleteCategory 删除分类，仍被支出引用时拒绝
func (s *ExpenseService) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	if _, err := s.GetCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	count, err := s.expenseRepo.CountExpensesByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrCategoryInUse
	}
	return s.expenseRepo.DeleteCategory(ctx, categoryID)
}

// ============================================================
// 支出
// ============================================================

type CreateExpenseRequest struct {
	CategoryID    int64   `json:"category_id" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	ReceiptURL    string  `json:"receipt_url"`
	Notes         string  `json:"notes"`
	SpentAt       int64   `json:"spent_at"` // Unix 毫秒，缺省取当前时间
}

func (s *ExpenseService) CreateExpense(ctx context.Context, userID int64, req *CreateExpenseRequest) (*model.Expense, error) {
	if _, err := s.GetCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}

	spentAt := timeNow()
	if req.SpentAt > 0 {
		spentAt = time.UnixMilli(req.SpentAt)
	}

	expense := &model.Expense{
		UserID:        userID,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    req.ReceiptURL,
		Notes:         req.Notes,
		SpentAt:       spentAt,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("创建支出失败: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID, categoryID int64, start, end *time.Time) ([]*model.Expense, error) {
	return s.expenseRepo.List(ctx, userID, categoryID, start, end)
}

type ExpenseStats struct {
	TotalExpenses      float64            `json:"total_expenses"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	Count              int                `json:"count"`
}

// GetStats 按周期统计支出总额和分类分布
func (s *ExpenseService) GetStats(ctx context.Context, userID int64, period string) (*ExpenseStats, error) {
	start, err := periodStart(period)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListSpentSince(ctx, userID, start)
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

	stats := &ExpenseStats{
		ExpensesByCategory: make(map[string]float64),
		Count:              len(expenses),
	}
	for _, e := range expenses {
		stats.TotalExpenses += e.Amount
		name := categoryNames[e.CategoryID]
		if name == "" {
			name = "未分类"
		}
		stats.ExpensesByCategory[name] += e.Amount
	}
	return stats, nil
}
