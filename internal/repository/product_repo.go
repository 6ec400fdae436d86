package repository

import (
	"context"
	"errors"
	"strings"

	"bizdesk/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound = errors.New("商品不存在")
	ErrDuplicateSKU    = errors.New("SKU 已存在")
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List 查询商品，支持分类过滤和名称/SKU 模糊搜索
func (r *ProductRepository) List(ctx context.Context, userID int64, category, search string) ([]*model.Product, error) {
	var products []*model.Product
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SetQuantities 覆盖写库存（调用方负责在事务内先读再算，数量不允许为负）
func (r *ProductRepository) SetQuantities(ctx context.Context, tx *gorm.DB, id int64, quantityBox, quantityKg float64) error {
	if tx == nil {
		tx = r.db
	}
	result := tx.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity_box": quantityBox,
			"quantity_kg":  quantityKg,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListLowStock 查询触发低库存告警的在售商品
func (r *ProductRepository) ListLowStock(ctx context.Context, userID int64) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND quantity_box <= min_stock_box", userID, true).
		Find(&products).Error
	return products, err
}

// ListAllLowStock 全量低库存扫描（后台任务使用，不限用户）
func (r *ProductRepository) ListAllLowStock(ctx context.Context, limit int) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND quantity_box <= min_stock_box", true).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&products).Error
	return products, err
}
