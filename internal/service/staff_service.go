package service

import (
	"context"
	"fmt"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"
	"bizdesk/pkg/idgen"

	"gorm.io/gorm"
)

type StaffService struct {
	staffRepo *repository.StaffRepository
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{
		staffRepo: repository.NewStaffRepository(db),
	}
}

type CreateStaffRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	PhoneNumber    string `json:"phone_number"`
	IDCardFrontURL string `json:"id_card_front_url"`
	IDCardBackURL  string `json:"id_card_back_url"`
}

func (s *StaffService) Create(ctx context.Context, userID int64, req *CreateStaffRequest) (*model.Staff, error) {
	existing, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repository.ErrStaffEmailTaken
	}

	staff := &model.Staff{
		StaffNo:        idgen.GenerateStaffNo(),
		UserID:         userID,
		FullName:       req.FullName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		IDCardFrontURL: req.IDCardFrontURL,
		IDCardBackURL:  req.IDCardBackURL,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("创建员工失败: %w", err)
	}
	return staff, nil
}

func (s *StaffService) List(ctx context.Context, userID int64) ([]*model.Staff, error) {
	return s.staffRepo.List(ctx, userID)
}

// EmailExists 邮箱查重（供注册前校验，不限归属用户）
func (s *StaffService) EmailExists(ctx context.Context, email string) (bool, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return staff != nil, nil
}

func (s *StaffService) Remove(ctx context.Context, userID, staffID int64) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if staff.UserID != userID {
		return repository.ErrAccessDenied
	}
	return s.staffRepo.Delete(ctx, staffID)
}
