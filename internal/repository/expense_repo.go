package repository

import (
	"context"
	"errors"
	"time"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("支出分类不存在")
	ErrCategoryDuplicate = errors.New("支出分类已存在")
	ErrCategoryInUse     = errors.New("支出分类仍被支出引用，不允许删除")
	ErrExpenseNotFound   = errors.New("支出记录不存在")
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// ============================================================
// 支出分类
// ============================================================

func (r *ExpenseRepository) CreateCategory(ctx context.Context, category *model.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *ExpenseRepository) GetCategoryByID(ctx context.Context, id int64) (*model.ExpenseCategory, error) {
	var category model.ExpenseCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *ExpenseRepository) GetCategoryByName(ctx context.Context, userID int64, name string) (*model.ExpenseCategory, error) {
	var category model.ExpenseCategory
	err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *ExpenseRepository) ListCategories(ctx context.Context, userID int64) ([]*model.ExpenseCategory, error) {
	var categories []*model.ExpenseCategory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&categories).Error
	return categories, err
}

func (r *ExpenseRepository) UpdateCategory(ctx context.Context, id int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseCategory{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *ExpenseRepository) CountExpensesByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *ExpenseRepository) DeleteCategory(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ExpenseCategory{}, id).Error
}

// ============================================================
// 支出
// ============================================================

func (r *ExpenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// List 查询支出，支持分类和日期范围过滤，按发生时间倒序
func (r *ExpenseRepository) List(ctx context.Context, userID, categoryID int64, start, end *time.Time) ([]*model.Expense, error) {
	var expenses []*model.Expense
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if start != nil {
		query = query.Where("spent_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("spent_at <= ?", *end)
	}
	err := query.Order("spent_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListSpentSince(ctx context.Context, userID int64, since time.Time) ([]*model.Expense, error) {
	var expenses []*model.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND spent_at >= ?", userID, since).
		Find(&expenses).Error
	return expenses, err
}
