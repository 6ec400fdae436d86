package repository

import (
	"context"
	"errors"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var (
	ErrStaffNotFound   = errors.New("员工不存在")
	ErrStaffEmailTaken = errors.New("员工邮箱已存在")
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) List(ctx context.Context, userID int64) ([]*model.Staff, error) {
	var staff []*model.Staff
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&staff).Error
	return staff, err
}

func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Staff{}, id).Error
}
