package service

import (
	"context"
	"fmt"
	"log"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type ProductService struct {
	db          *gorm.DB
	productRepo *repository.ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:          db,
		productRepo: repository.NewProductRepository(db),
	}
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	QuantityBox float64 `json:"quantity_box" binding:"gte=0"`
	QuantityKg  float64 `json:"quantity_kg" binding:"gte=0"`
	CostPerBox  float64 `json:"cost_per_box" binding:"gte=0"`
	CostPerKg   float64 `json:"cost_per_kg" binding:"gte=0"`
	PricePerBox float64 `json:"price_per_box" binding:"gte=0"`
	PricePerKg  float64 `json:"price_per_kg" binding:"gte=0"`
	MinStockBox float64 `json:"min_stock_box" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

func (s *ProductService) CreateProduct(ctx context.Context, userID int64, req *CreateProductRequest) (*model.Product, error) {
	existing, err := s.productRepo.GetBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repository.ErrDuplicateSKU
	}

	product := &model.Product{
		UserID:      userID,
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Description: req.Description,
		QuantityBox: req.QuantityBox,
		QuantityKg:  req.QuantityKg,
		CostPerBox:  req.CostPerBox,
		CostPerKg:   req.CostPerKg,
		PricePerBox: req.PricePerBox,
		PricePerKg:  req.PricePerKg,
		MinStockBox: req.MinStockBox,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, userID int64, category, search string) ([]*model.Product, error) {
	return s.productRepo.List(ctx, userID, category, search)
}

func (s *ProductService) GetProduct(ctx context.Context, userID, productID int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, repository.ErrAccessDenied
	}
	return product, nil
}

// UpdateProduct 只更新提交的字段
func (s *ProductService) UpdateProduct(ctx context.Context, userID, productID int64, updates map[string]interface{}) (*model.Product, error) {
	if _, err := s.GetProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.productRepo.Update(ctx, productID, updates); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(ctx, productID)
}

// AdjustStock 显式库存调整（入库、盘点修正），负调整扣到 0 为止
func (s *ProductService) AdjustStock(ctx context.Context, userID, productID int64, adjustBox, adjustKg float64, reason string) (*model.Product, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if _, err := s.GetProduct(ctx, userID, productID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByIDForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		newBox := product.QuantityBox + adjustBox
		if newBox < 0 {
			newBox = 0
		}
		newKg := product.QuantityKg + adjustKg
		if newKg < 0 {
			newKg = 0
		}
		return s.productRepo.SetQuantities(ctx, tx, productID, newBox, newKg)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("库存已调整: productID=%d, box=%+.2f, kg=%+.2f, reason=%s", productID, adjustBox, adjustKg, reason)
	return s.productRepo.GetByID(ctx, productID)
}

// GetLowStock 查询低库存在售商品
func (s *ProductService) GetLowStock(ctx context.Context, userID int64) ([]*model.Product, error) {
	return s.productRepo.ListLowStock(ctx, userID)
}
