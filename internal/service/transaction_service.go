package service

import (
	"context"
	"fmt"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"
	"bizdesk/pkg/idgen"

	"gorm.io/gorm"
)

type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

type TransactionRequest struct {
	SaleID        int64   `json:"sale_id" binding:"required"`
	ProductName   string  `json:"product_name" binding:"required"`
	ClientName    string  `json:"client_name" binding:"required"`
	BoxesQuantity float64 `json:"boxes_quantity" binding:"gte=0"`
	KgQuantity    float64 `json:"kg_quantity" binding:"gte=0"`
	TotalAmount   float64 `json:"total_amount" binding:"gte=0"`
	PaymentStatus string  `json:"payment_status" binding:"required,oneof=pending partial completed"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
}

func (s *TransactionService) Create(ctx context.Context, userID int64, req *TransactionRequest) (*model.BusinessTransaction, error) {
	trans := &model.BusinessTransaction{
		TransactionNo: idgen.GenerateTransactionNo(),
		SaleID:        req.SaleID,
		UserID:        userID,
		ProductName:   req.ProductName,
		ClientName:    req.ClientName,
		BoxesQuantity: req.BoxesQuantity,
		KgQuantity:    req.KgQuantity,
		TotalAmount:   req.TotalAmount,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		UpdatedBy:     userID,
	}
	if err := s.transactionRepo.Create(ctx, nil, trans); err != nil {
		return nil, fmt.Errorf("创建流水失败: %w", err)
	}
	return trans, nil
}

func (s *TransactionService) List(ctx context.Context, userID int64, paymentStatus string) ([]*model.BusinessTransaction, error) {
	if paymentStatus != "" {
		return s.transactionRepo.ListByPaymentStatus(ctx, userID, paymentStatus)
	}
	return s.transactionRepo.List(ctx, userID)
}

// Update 按流水号整体更新业务字段（审批通过的销售变更会同步这里）
func (s *TransactionService) Update(ctx context.Context, userID int64, transactionNo string, req *TransactionRequest) (*model.BusinessTransaction, error) {
	trans, err := s.transactionRepo.GetByTransactionNo(ctx, transactionNo)
	if err != nil {
		return nil, err
	}
	if trans.UserID != userID {
		return nil, repository.ErrAccessDenied
	}

	updates := map[string]interface{}{
		"sale_id":        req.SaleID,
		"product_name":   req.ProductName,
		"client_name":    req.ClientName,
		"boxes_quantity": req.BoxesQuantity,
		"kg_quantity":    req.KgQuantity,
		"total_amount":   req.TotalAmount,
		"payment_status": req.PaymentStatus,
		"payment_method": req.PaymentMethod,
		"updated_by":     userID,
	}
	if err := s.transactionRepo.UpdateByTransactionNo(ctx, transactionNo, updates); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByTransactionNo(ctx, transactionNo)
}

func (s *TransactionService) Delete(ctx context.Context, userID int64, transactionNo string) error {
	trans, err := s.transactionRepo.GetByTransactionNo(ctx, transactionNo)
	if err != nil {
		return err
	}
	if trans.UserID != userID {
		return repository.ErrAccessDenied
	}
	return s.transactionRepo.DeleteByTransactionNo(ctx, transactionNo)
}
