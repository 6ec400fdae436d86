package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"bizdesk/internal/config"
	"bizdesk/internal/model"
	"bizdesk/internal/repository"
	"bizdesk/pkg/idgen"

	"gorm.io/gorm"
)

type SaleService struct {
	db              *gorm.DB
	cfg             *config.Config
	saleRepo        *repository.SaleRepository
	productRepo     *repository.ProductRepository
	customerRepo    *repository.CustomerRepository
	transactionRepo *repository.TransactionRepository
	outboxRepo      *repository.OutboxRepository
}

func NewSaleService(db *gorm.DB, cfg *config.Config) *SaleService {
	return &SaleService{
		db:              db,
		cfg:             cfg,
		saleRepo:        repository.NewSaleRepository(db),
		productRepo:     repository.NewProductRepository(db),
		customerRepo:    repository.NewCustomerRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		outboxRepo:      repository.NewOutboxRepository(db),
	}
}

type CreateSaleRequest struct {
	ProductID     int64   `json:"product_id" binding:"required"`
	BoxesQuantity float64 `json:"boxes_quantity" binding:"gte=0"`
	KgQuantity    float64 `json:"kg_quantity" binding:"gte=0"`
	BoxPrice      float64 `json:"box_price" binding:"gte=0"`
	KgPrice       float64 `json:"kg_price" binding:"gte=0"`
	AmountPaid    float64 `json:"amount_paid" binding:"gte=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	CustomerID    int64   `json:"customer_id"`
	ClientName    string  `json:"client_name" binding:"required"`
	PhoneNumber   string  `json:"phone_number"`
	Notes         string  `json:"notes"`
}

// CreateSale 创建销售单
//
// 【关键点】一次销售在同一个事务内完成四件事：
// 1. 扣减商品库存（按箱/公斤，扣到 0 为止不出现负库存）
// 2. 插入销售单（金额不变式 amount_paid + remaining == total 在这里建立）
// 3. 追加一条交易流水
// 4. 欠款销售把差额记到客户余额，并写发件箱事件
func (s *SaleService) CreateSale(ctx context.Context, userID int64, req *CreateSaleRequest) (*model.Sale, error) {
	totalAmount := req.BoxesQuantity*req.BoxPrice + req.KgQuantity*req.KgPrice
	amountPaid := req.AmountPaid
	if amountPaid > totalAmount {
		amountPaid = totalAmount // 溢缴按结清处理
	}
	remaining := totalAmount - amountPaid

	var sale *model.Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.GetByIDForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}

		// 库存扣到 0 为止
		newBox := product.QuantityBox - req.BoxesQuantity
		if newBox < 0 {
			newBox = 0
		}
		newKg := product.QuantityKg - req.KgQuantity
		if newKg < 0 {
			newKg = 0
		}
		if err := s.productRepo.SetQuantities(ctx, tx, product.ID, newBox, newKg); err != nil {
			return fmt.Errorf("扣减库存失败: %w", err)
		}

		sale = &model.Sale{
			SaleNo:          idgen.GenerateSaleNo(),
			UserID:          userID,
			ProductID:       product.ID,
			BoxesQuantity:   req.BoxesQuantity,
			KgQuantity:      req.KgQuantity,
			BoxPrice:        req.BoxPrice,
			KgPrice:         req.KgPrice,
			ProfitPerBox:    req.BoxPrice - product.CostPerBox,
			ProfitPerKg:     req.KgPrice - product.CostPerKg,
			TotalAmount:     totalAmount,
			AmountPaid:      amountPaid,
			RemainingAmount: remaining,
			PaymentStatus:   model.ResolvePaymentStatus(amountPaid, totalAmount),
			PaymentMethod:   req.PaymentMethod,
			CustomerID:      req.CustomerID,
			ClientName:      req.ClientName,
			PhoneNumber:     req.PhoneNumber,
			Notes:           req.Notes,
			PerformedBy:     userID,
		}
		if err := s.saleRepo.Create(ctx, tx, sale); err != nil {
			return fmt.Errorf("创建销售单失败: %w", err)
		}

		trans := &model.BusinessTransaction{
			TransactionNo: idgen.GenerateTransactionNo(),
			SaleID:        sale.ID,
			UserID:        userID,
			ProductName:   product.Name,
			ClientName:    req.ClientName,
			BoxesQuantity: req.BoxesQuantity,
			KgQuantity:    req.KgQuantity,
			TotalAmount:   totalAmount,
			PaymentStatus: sale.PaymentStatus,
			PaymentMethod: req.PaymentMethod,
			UpdatedBy:     userID,
		}
		if err := s.transactionRepo.Create(ctx, tx, trans); err != nil {
			return fmt.Errorf("记录流水失败: %w", err)
		}

		// 欠款挂到客户余额（散客销售 CustomerID 为 0，不挂账）
		if req.CustomerID != 0 && remaining > 0 {
			if err := s.customerRepo.AdjustBalance(ctx, tx, req.CustomerID, remaining); err != nil {
				return fmt.Errorf("记欠款失败: %w", err)
			}
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"sale_no":        sale.SaleNo,
			"product_id":     product.ID,
			"total_amount":   totalAmount,
			"amount_paid":    amountPaid,
			"payment_status": sale.PaymentStatus,
		})
		outboxMsg := &model.OutboxMessage{
			MessageKey: sale.SaleNo,
			Topic:      s.saleEventTopic(),
			Payload:    string(payload),
			Status:     model.OutboxStatusPending,
		}
		if err := s.outboxRepo.Create(ctx, tx, outboxMsg); err != nil {
			return fmt.Errorf("写入消息失败: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("销售单已创建: saleNo=%s, total=%.2f, status=%s", sale.SaleNo, totalAmount, sale.PaymentStatus)
	return sale, nil
}

// AddPayment 对欠款销售单补缴收款
// 重算收款进度三字段，保持金额不变式；挂账客户同步冲减欠款余额
func (s *SaleService) AddPayment(ctx context.Context, userID, saleID int64, amount float64, paymentMethod string) (*model.Sale, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("收款金额必须大于0")
	}

	sale, err := s.saleRepo.GetOwned(ctx, saleID, userID)
	if err != nil {
		return nil, err
	}

	newPaid := sale.AmountPaid + amount
	if newPaid > sale.TotalAmount {
		newPaid = sale.TotalAmount
	}
	applied := newPaid - sale.AmountPaid
	newRemaining := sale.TotalAmount - newPaid
	newStatus := model.ResolvePaymentStatus(newPaid, sale.TotalAmount)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.UpdatePayment(ctx, tx, sale.ID, newPaid, newRemaining, newStatus); err != nil {
			return fmt.Errorf("更新收款进度失败: %w", err)
		}

		if sale.CustomerID != 0 && applied > 0 {
			if err := s.customerRepo.AdjustBalance(ctx, tx, sale.CustomerID, -applied); err != nil {
				return fmt.Errorf("冲减欠款失败: %w", err)
			}
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"sale_no":        sale.SaleNo,
			"amount":         applied,
			"payment_method": paymentMethod,
			"payment_status": newStatus,
		})
		outboxMsg := &model.OutboxMessage{
			MessageKey: sale.SaleNo,
			Topic:      s.saleEventTopic(),
			Payload:    string(payload),
			Status:     model.OutboxStatusPending,
		}
		return s.outboxRepo.Create(ctx, tx, outboxMsg)
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetByID(ctx, sale.ID)
}

// DeleteSale 直接删除销售单（不走审核）
// 库存不自动回补，需要回补走商品模块的显式库存调整
func (s *SaleService) DeleteSale(ctx context.Context, userID, saleID int64) error {
	sale, err := s.saleRepo.GetOwned(ctx, saleID, userID)
	if err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, nil, sale.ID)
}

func (s *SaleService) ListSales(ctx context.Context, userID int64, paymentStatus string) ([]*model.Sale, error) {
	return s.saleRepo.List(ctx, userID, paymentStatus)
}

func (s *SaleService) GetSale(ctx context.Context, userID, saleID int64) (*model.Sale, error) {
	return s.saleRepo.GetOwned(ctx, saleID, userID)
}

type SaleStats struct {
	TotalSales        int     `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// GetStats 按周期统计销量与实收
func (s *SaleService) GetStats(ctx context.Context, userID int64, period string) (*SaleStats, error) {
	start, err := periodStart(period)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListCreatedBetween(ctx, userID, start, timeNow())
	if err != nil {
		return nil, err
	}

	stats := &SaleStats{TotalSales: len(sales)}
	for _, sale := range sales {
		stats.TotalRevenue += sale.AmountPaid
	}
	if stats.TotalSales > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalSales)
	}
	return stats, nil
}

func (s *SaleService) saleEventTopic() string {
	if s.cfg != nil && s.cfg.Kafka.Topic.SaleEvent != "" {
		return s.cfg.Kafka.Topic.SaleEvent
	}
	return "bizdesk_sale_event"
}
