package job

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bizdesk/internal/config"
	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

// LowStockJob 低库存巡检任务
// 周期性扫描在售商品，库存触达告警阈值的写一条发件箱告警，
// 由 OutboxSender 投递到 stock_alert 主题
type LowStockJob struct {
	db          *gorm.DB
	productRepo *repository.ProductRepository
	outboxRepo  *repository.OutboxRepository
	cfg         *config.Config
	stopCh      chan struct{}
	interval    time.Duration
	batchSize   int
}

func NewLowStockJob(db *gorm.DB, cfg *config.Config) *LowStockJob {
	interval := 30 * time.Minute
	if cfg.Business.LowStockScanMinutes > 0 {
		interval = time.Duration(cfg.Business.LowStockScanMinutes) * time.Minute
	}
	return &LowStockJob{
		db:          db,
		productRepo: repository.NewProductRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
		cfg:         cfg,
		stopCh:      make(chan struct{}),
		interval:    interval,
		batchSize:   100,
	}
}

func (j *LowStockJob) Start(ctx context.Context) {
	log.Println("[LowStockJob] 低库存巡检任务启动")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[LowStockJob] 收到停止信号，任务退出")
			return
		case <-j.stopCh:
			log.Println("[LowStockJob] 任务停止")
			return
		case <-ticker.C:
			j.scanLowStock(ctx)
		}
	}
}

func (j *LowStockJob) Stop() {
	close(j.stopCh)
}

func (j *LowStockJob) scanLowStock(ctx context.Context) {
	products, err := j.productRepo.ListAllLowStock(ctx, j.batchSize)
	if err != nil {
		log.Printf("[LowStockJob] 查询低库存商品失败: %v", err)
		return
	}

	if len(products) == 0 {
		return
	}

	log.Printf("[LowStockJob] 发现 %d 个低库存商品", len(products))

	for _, product := range products {
		payload, _ := json.Marshal(map[string]interface{}{
			"product_id":    product.ID,
			"sku":           product.SKU,
			"name":          product.Name,
			"quantity_box":  product.QuantityBox,
			"min_stock_box": product.MinStockBox,
		})
		msg := &model.OutboxMessage{
			MessageKey: product.SKU,
			Topic:      j.cfg.Kafka.Topic.StockAlert,
			Payload:    string(payload),
			Status:     model.OutboxStatusPending,
		}
		if err := j.outboxRepo.Create(ctx, nil, msg); err != nil {
			log.Printf("[LowStockJob] 写入告警消息失败: sku=%s, err=%v", product.SKU, err)
		}
	}
}
