package job

import (
	"context"
	"log"
	"time"

	"bizdesk/internal/config"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

// StaleAuditJob 滞留审核提醒任务
// 审核提案长期无人审批会卡住销售单的修正流程，这里定期把滞留的记下日志提醒
type StaleAuditJob struct {
	db        *gorm.DB
	auditRepo *repository.AuditRepository
	cfg       *config.Config
	stopCh    chan struct{}
	interval  time.Duration
	batchSize int
}

func NewStaleAuditJob(db *gorm.DB, cfg *config.Config) *StaleAuditJob {
	return &StaleAuditJob{
		db:        db,
		auditRepo: repository.NewAuditRepository(db),
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		interval:  1 * time.Hour,
		batchSize: 50,
	}
}

func (j *StaleAuditJob) Start(ctx context.Context) {
	log.Println("[StaleAuditJob] 滞留审核提醒任务启动")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[StaleAuditJob] 收到停止信号，任务退出")
			return
		case <-j.stopCh:
			log.Println("[StaleAuditJob] 任务停止")
			return
		case <-ticker.C:
			j.remindStaleAudits(ctx)
		}
	}
}

func (j *StaleAuditJob) Stop() {
	close(j.stopCh)
}

func (j *StaleAuditJob) remindStaleAudits(ctx context.Context) {
	staleDays := 3
	if j.cfg.Business.StaleAuditDays > 0 {
		staleDays = j.cfg.Business.StaleAuditDays
	}
	before := time.Now().AddDate(0, 0, -staleDays)

	audits, err := j.auditRepo.ListStalePending(ctx, before, j.batchSize)
	if err != nil {
		log.Printf("[StaleAuditJob] 查询滞留审核失败: %v", err)
		return
	}

	if len(audits) == 0 {
		return
	}

	log.Printf("[StaleAuditJob] 发现 %d 条滞留超过 %d 天的待审核记录", len(audits), staleDays)
	for _, audit := range audits {
		log.Printf("[StaleAuditJob] 待审核: auditNo=%s, saleID=%d, type=%s, createdAt=%s",
			audit.AuditNo, audit.SaleID, audit.AuditType, audit.CreatedAt.Format(time.RFC3339))
	}
}
