package service

import (
	"context"
	"fmt"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	saleRepo     *repository.SaleRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		customerRepo: repository.NewCustomerRepository(db),
		saleRepo:     repository.NewSaleRepository(db),
	}
}

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (s *CustomerService) CreateCustomer(ctx context.Context, userID int64, req *CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Notes:    req.Notes,
		Balance:  0,
		IsActive: true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("创建客户失败: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, userID int64, isActive, hasBalance *bool) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx, userID, isActive, hasBalance)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, userID, customerID int64, updates map[string]interface{}) (*model.Customer, error) {
	if _, err := s.customerRepo.GetOwned(ctx, customerID, userID); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.customerRepo.Update(ctx, customerID, updates); err != nil {
			return nil, err
		}
	}
	return s.customerRepo.GetByID(ctx, customerID)
}

// GetTransactionHistory 客户的历史销售单，按创建时间倒序
func (s *CustomerService) GetTransactionHistory(ctx context.Context, userID, customerID int64) ([]*model.Sale, error) {
	if _, err := s.customerRepo.GetOwned(ctx, customerID, userID); err != nil {
		return nil, err
	}
	return s.saleRepo.ListByCustomer(ctx, userID, customerID)
}
