package service

import (
	"context"
	"fmt"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"
	"bizdesk/pkg/idgen"

	"gorm.io/gorm"
)

type DepositService struct {
	depositRepo *repository.DepositRepository
}

func NewDepositService(db *gorm.DB) *DepositService {
	return &DepositService{
		depositRepo: repository.NewDepositRepository(db),
	}
}

type DepositRequest struct {
	DepositType     string  `json:"deposit_type" binding:"required"`
	AccountName     string  `json:"account_name" binding:"required"`
	AccountNumber   string  `json:"account_number" binding:"required"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	ToRecipient     string  `json:"to_recipient" binding:"required"`
	DepositImageURL string  `json:"deposit_image_url"`
	Approval        string  `json:"approval" binding:"required"`
}

func (s *DepositService) Create(ctx context.Context, userID int64, req *DepositRequest) (*model.Deposit, error) {
	deposit := &model.Deposit{
		DepositNo:       idgen.GenerateDepositNo(),
		UserID:          userID,
		DepositType:     req.DepositType,
		AccountName:     req.AccountName,
		AccountNumber:   req.AccountNumber,
		Amount:          req.Amount,
		ToRecipient:     req.ToRecipient,
		DepositImageURL: req.DepositImageURL,
		Approval:        req.Approval,
		CreatedBy:       userID,
		UpdatedBy:       userID,
	}
	if err := s.depositRepo.Create(ctx, deposit); err != nil {
		return nil, fmt.Errorf("创建存款记录失败: %w", err)
	}
	return deposit, nil
}

func (s *DepositService) List(ctx context.Context, userID int64) ([]*model.Deposit, error) {
	return s.depositRepo.List(ctx, userID)
}

func (s *DepositService) GetByDepositNo(ctx context.Context, userID int64, depositNo string) (*model.Deposit, error) {
	deposit, err := s.depositRepo.GetByDepositNo(ctx, depositNo)
	if err != nil {
		return nil, err
	}
	if deposit.UserID != userID {
		return nil, repository.ErrAccessDenied
	}
	return deposit, nil
}

func (s *DepositService) Update(ctx context.Context, userID int64, depositNo string, req *DepositRequest) (*model.Deposit, error) {
	deposit, err := s.GetByDepositNo(ctx, userID, depositNo)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"deposit_type":      req.DepositType,
		"account_name":      req.AccountName,
		"account_number":    req.AccountNumber,
		"amount":            req.Amount,
		"to_recipient":      req.ToRecipient,
		"deposit_image_url": req.DepositImageURL,
		"approval":          req.Approval,
		"updated_by":        userID,
	}
	if err := s.depositRepo.Update(ctx, deposit.ID, updates); err != nil {
		return nil, err
	}
	return s.depositRepo.GetByDepositNo(ctx, depositNo)
}

func (s *DepositService) Delete(ctx context.Context, userID int64, depositNo string) error {
	deposit, err := s.GetByDepositNo(ctx, userID, depositNo)
	if err != nil {
		return err
	}
	return s.depositRepo.Delete(ctx, deposit.ID)
}
