package repository

import (
	"context"
	"errors"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("客户不存在")

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) GetOwned(ctx context.Context, id, userID int64) (*model.Customer, error) {
	customer, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.UserID != userID {
		return nil, ErrAccessDenied
	}
	return customer, nil
}

// List 查询客户，支持按启用状态和是否有欠款过滤
func (r *CustomerRepository) List(ctx context.Context, userID int64, isActive, hasBalance *bool) ([]*model.Customer, error) {
	var customers []*model.Customer
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	if hasBalance != nil {
		if *hasBalance {
			query = query.Where("balance > 0")
		} else {
			query = query.Where("balance <= 0")
		}
	}
	err := query.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// AdjustBalance 增减欠款余额（正数记欠款，负数记收款）
func (r *CustomerRepository) AdjustBalance(ctx context.Context, tx *gorm.DB, id int64, delta float64) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
