package repository

import (
	"context"
	"errors"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("交易流水不存在")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *gorm.DB, trans *model.BusinessTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(trans).Error
}

func (r *TransactionRepository) GetByTransactionNo(ctx context.Context, transactionNo string) (*model.BusinessTransaction, error) {
	var trans model.BusinessTransaction
	err := r.db.WithContext(ctx).Where("transaction_no = ?", transactionNo).First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &trans, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID int64) ([]*model.BusinessTransaction, error) {
	var transactions []*model.BusinessTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) ListByPaymentStatus(ctx context.Context, userID int64, paymentStatus string) ([]*model.BusinessTransaction, error) {
	var transactions []*model.BusinessTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND payment_status = ?", userID, paymentStatus).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

// UpdateByTransactionNo 按流水号整体更新业务字段
func (r *TransactionRepository) UpdateByTransactionNo(ctx context.Context, transactionNo string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.BusinessTransaction{}).
		Where("transaction_no = ?", transactionNo).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteByTransactionNo(ctx context.Context, transactionNo string) error {
	result := r.db.WithContext(ctx).
		Where("transaction_no = ?", transactionNo).
		Delete(&model.BusinessTransaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
