package service

import (
	"context"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type SettingService struct {
	settingRepo *repository.SettingRepository
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{
		settingRepo: repository.NewSettingRepository(db),
	}
}

func (s *SettingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	return s.settingRepo.GetByKey(ctx, key)
}

func (s *SettingService) GetAll(ctx context.Context) ([]*model.Setting, error) {
	return s.settingRepo.GetAll(ctx)
}

func (s *SettingService) GetByCategory(ctx context.Context, category string) ([]*model.Setting, error) {
	return s.settingRepo.GetByCategory(ctx, category)
}

// Update 写配置项，不存在则创建
func (s *SettingService) Update(ctx context.Context, key, value, category string) (*model.Setting, error) {
	return s.settingRepo.Upsert(ctx, key, value, category)
}
