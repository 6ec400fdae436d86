package repository

import (
	"context"
	"errors"
	"time"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var (
	ErrSaleNotFound = errors.New("销售单不存在")
	ErrAccessDenied = errors.New("无权访问该记录")
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, tx *gorm.DB, sale *model.Sale) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(sale).Error
}

func (r *SaleRepository) GetByID(ctx context.Context, id int64) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) GetBySaleNo(ctx context.Context, saleNo string) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).Where("sale_no = ?", saleNo).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// GetOwned 按主键取销售单并校验归属
// 记录不存在返回 ErrSaleNotFound；存在但不属于该用户返回 ErrAccessDenied
func (r *SaleRepository) GetOwned(ctx context.Context, id, userID int64) (*model.Sale, error) {
	sale, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.UserID != userID {
		return nil, ErrAccessDenied
	}
	return sale, nil
}

// List 查询用户的销售单，支持按收款状态过滤，按创建时间倒序
func (r *SaleRepository) List(ctx context.Context, userID int64, paymentStatus string) ([]*model.Sale, error) {
	var sales []*model.Sale
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	err := query.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) ListByCustomer(ctx context.Context, userID, customerID int64) ([]*model.Sale, error) {
	var sales []*model.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND customer_id = ?", userID, customerID).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) ListCreatedBetween(ctx context.Context, userID int64, start, end time.Time) ([]*model.Sale, error) {
	var sales []*model.Sale
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

// UpdateQuantities 回写审批通过的数量变更
func (r *SaleRepository) UpdateQuantities(ctx context.Context, tx *gorm.DB, id int64, boxes, kg float64) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Sale{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"boxes_quantity": boxes,
			"kg_quantity":    kg,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// UpdatePaymentMethod 回写审批通过的收款方式变更
func (r *SaleRepository) UpdatePaymentMethod(ctx context.Context, tx *gorm.DB, id int64, paymentMethod string) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Sale{}).
		Where("id = ?", id).
		Update("payment_method", paymentMethod)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// UpdatePayment 回写收款进度，三个字段必须一起更新以维持金额不变式
func (r *SaleRepository) UpdatePayment(ctx context.Context, tx *gorm.DB, id int64, amountPaid, remaining float64, status string) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Sale{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount_paid":      amountPaid,
			"remaining_amount": remaining,
			"payment_status":   status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

func (r *SaleRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Delete(&model.Sale{}, id).Error
}
