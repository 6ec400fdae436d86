package repository

import (
	"context"
	"errors"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("配置项不存在")

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) GetByKey(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepository) GetAll(ctx context.Context) ([]*model.Setting, error) {
	var settings []*model.Setting
	err := r.db.WithContext(ctx).Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) GetByCategory(ctx context.Context, category string) ([]*model.Setting, error) {
	var settings []*model.Setting
	err := r.db.WithContext(ctx).Where("category = ?", category).Find(&settings).Error
	return settings, err
}

// Upsert 存在则更新，不存在则插入
func (r *SettingRepository) Upsert(ctx context.Context, key, value, category string) (*model.Setting, error) {
	existing, err := r.GetByKey(ctx, key)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Value = value
		existing.Category = category
		if err := r.db.WithContext(ctx).
			Model(&model.Setting{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{"value": value, "category": category}).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	setting := &model.Setting{Key: key, Value: value, Category: category}
	if err := r.db.WithContext(ctx).Create(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
