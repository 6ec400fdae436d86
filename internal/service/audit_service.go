package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"bizdesk/internal/config"
	"bizdesk/internal/infrastructure/lock"
	"bizdesk/internal/model"
	"bizdesk/internal/repository"
	"bizdesk/pkg/idgen"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ============================================================================
// 销售审核服务
// ============================================================================
//
// 销售单的数量、收款方式修改和删除走"先提案、后审批"两步：
//
//   发起人 -> ProposeChange / ProposeDeletion（只落审核记录，销售单不动）
//   审批人 -> Resolve（approved 才把变更应用到销售单，rejected 只盖章）
//
// 【关键点】审批的互斥分三层：
// 1. Redis 审批锁（按审核单号），把并发审批挡在事务外
// 2. 拿锁后重读审核记录，确认仍是 pending
// 3. 数据库条件更新 WHERE approval_status='pending' 最终兜底
// 任何一层失败都返回"已有结论"，审核终态绝不会被改写两次

var ErrReasonRequired = errors.New("变更理由不能为空")

type AuditService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	auditRepo   *repository.AuditRepository
	saleRepo    *repository.SaleRepository
	outboxRepo  *repository.OutboxRepository
}

func NewAuditService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuditService {
	return &AuditService{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		auditRepo:   repository.NewAuditRepository(db),
		saleRepo:    repository.NewSaleRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

type ProposeChangeRequest struct {
	SaleID        int64    `json:"sale_id" binding:"required"`
	BoxesQuantity *float64 `json:"boxes_quantity"`
	KgQuantity    *float64 `json:"kg_quantity"`
	PaymentMethod *string  `json:"payment_method"`
	Reason        string   `json:"reason" binding:"required"`
}

// classifyAuditType 根据提交了哪些字段判定审核类型
// 数量字段优先于收款方式；都没提交则归为 edit（仅留痕）
func classifyAuditType(req *ProposeChangeRequest) string {
	if req.BoxesQuantity != nil || req.KgQuantity != nil {
		return model.AuditTypeQuantityChange
	}
	if req.PaymentMethod != nil {
		return model.AuditTypePaymentMethodChange
	}
	return model.AuditTypeEdit
}

// ProposeChange 发起销售单变更提案
//
// 只插入一条 pending 审核记录，销售单本身不做任何修改；
// after 快照按"未提交的字段沿用当前值"补全，审批时直接整体回写
func (s *AuditService) ProposeChange(ctx context.Context, userID int64, req *ProposeChangeRequest) (*model.SalesAudit, error) {
	if req.Reason == "" {
		return nil, ErrReasonRequired
	}

	sale, err := s.saleRepo.GetOwned(ctx, req.SaleID, userID)
	if err != nil {
		return nil, err
	}

	boxesAfter := sale.BoxesQuantity
	if req.BoxesQuantity != nil {
		boxesAfter = *req.BoxesQuantity
	}
	kgAfter := sale.KgQuantity
	if req.KgQuantity != nil {
		kgAfter = *req.KgQuantity
	}
	paymentMethodAfter := sale.PaymentMethod
	if req.PaymentMethod != nil {
		paymentMethodAfter = *req.PaymentMethod
	}

	oldValues, _ := json.Marshal(map[string]interface{}{
		"boxes_quantity": sale.BoxesQuantity,
		"kg_quantity":    sale.KgQuantity,
		"payment_method": sale.PaymentMethod,
	})
	newValues, _ := json.Marshal(map[string]interface{}{
		"boxes_quantity": boxesAfter,
		"kg_quantity":    kgAfter,
		"payment_method": paymentMethodAfter,
	})
	newValuesStr := string(newValues)

	audit := &model.SalesAudit{
		AuditNo:             idgen.GenerateAuditNo(),
		UserID:              userID,
		SaleID:              sale.ID,
		AuditType:           classifyAuditType(req),
		BoxesBefore:         sale.BoxesQuantity,
		BoxesAfter:          &boxesAfter,
		KgBefore:            sale.KgQuantity,
		KgAfter:             &kgAfter,
		PaymentMethodBefore: sale.PaymentMethod,
		PaymentMethodAfter:  &paymentMethodAfter,
		OldValues:           string(oldValues),
		NewValues:           &newValuesStr,
		PerformedBy:         userID,
		ApprovalStatus:      model.ApprovalStatusPending,
		Reason:              req.Reason,
	}

	if err := s.auditRepo.Create(ctx, nil, audit); err != nil {
		return nil, fmt.Errorf("创建审核记录失败: %w", err)
	}

	log.Printf("审核提案已创建: auditNo=%s, saleID=%d, type=%s", audit.AuditNo, sale.ID, audit.AuditType)
	return audit, nil
}

// ProposeDeletion 发起销售单删除提案
// 与变更提案同构，audit_type 固定为 deletion，没有 after 快照
func (s *AuditService) ProposeDeletion(ctx context.Context, userID, saleID int64, reason string) (*model.SalesAudit, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	sale, err := s.saleRepo.GetOwned(ctx, saleID, userID)
	if err != nil {
		return nil, err
	}

	oldValues, _ := json.Marshal(map[string]interface{}{
		"boxes_quantity": sale.BoxesQuantity,
		"kg_quantity":    sale.KgQuantity,
		"payment_method": sale.PaymentMethod,
		"box_price":      sale.BoxPrice,
		"kg_price":       sale.KgPrice,
		"total_amount":   sale.TotalAmount,
		"client_name":    sale.ClientName,
	})

	audit := &model.SalesAudit{
		AuditNo:             idgen.GenerateAuditNo(),
		UserID:              userID,
		SaleID:              sale.ID,
		AuditType:           model.AuditTypeDeletion,
		BoxesBefore:         sale.BoxesQuantity,
		KgBefore:            sale.KgQuantity,
		PaymentMethodBefore: sale.PaymentMethod,
		OldValues:           string(oldValues),
		NewValues:           nil, // 删除提案没有目标值
		PerformedBy:         userID,
		ApprovalStatus:      model.ApprovalStatusPending,
		Reason:              reason,
	}

	if err := s.auditRepo.Create(ctx, nil, audit); err != nil {
		return nil, fmt.Errorf("创建审核记录失败: %w", err)
	}

	log.Printf("删除提案已创建: auditNo=%s, saleID=%d", audit.AuditNo, sale.ID)
	return audit, nil
}

// ListAudits 查询当前用户的全部审核记录，按创建时间倒序
func (s *AuditService) ListAudits(ctx context.Context, userID int64) ([]*model.SalesAudit, error) {
	return s.auditRepo.ListByUser(ctx, userID)
}

// Resolve 审批：pending -> approved / rejected
//
// approved 时按 audit_type 把记录的变更应用到销售单；
// rejected 只在审核记录上盖章，销售单不动
func (s *AuditService) Resolve(ctx context.Context, userID, auditID int64, targetStatus, reason string) (*model.SalesAudit, error) {
	if targetStatus != model.ApprovalStatusApproved && targetStatus != model.ApprovalStatusRejected {
		return nil, fmt.Errorf("不支持的审批结论: %s", targetStatus)
	}

	audit, err := s.auditRepo.GetOwned(ctx, auditID, userID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionApproval(audit.ApprovalStatus, targetStatus) {
		return nil, repository.ErrAuditAlreadyResolved
	}

	// 审批锁：同一条审核同一时刻只允许一个审批在执行
	// 本地/测试环境可以不接 Redis，此时互斥完全由数据库条件更新兜底
	if s.redisClient != nil {
		lockTimeout := 30 * time.Second
		if s.cfg != nil && s.cfg.Business.AuditLockTimeoutSecs > 0 {
			lockTimeout = time.Duration(s.cfg.Business.AuditLockTimeoutSecs) * time.Second
		}
		auditLock := lock.NewAuditLock(s.redisClient, audit.AuditNo, userID, lockTimeout)
		if err := auditLock.Lock(ctx, 100*time.Millisecond, 30); err != nil {
			return nil, fmt.Errorf("系统繁忙，请稍后重试: %w", err)
		}
		defer auditLock.Unlock(ctx)

		// 拿锁后重读，可能已被并发审批抢先
		audit, err = s.auditRepo.GetOwned(ctx, auditID, userID)
		if err != nil {
			return nil, err
		}
		if !model.CanTransitionApproval(audit.ApprovalStatus, targetStatus) {
			return nil, repository.ErrAuditAlreadyResolved
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.auditRepo.UpdateApproval(ctx, tx, audit.ID, targetStatus, userID, reason); err != nil {
			return err
		}

		if targetStatus == model.ApprovalStatusApproved {
			if err := s.applyApprovedAudit(ctx, tx, audit); err != nil {
				return err
			}
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"audit_no":   audit.AuditNo,
			"sale_id":    audit.SaleID,
			"audit_type": audit.AuditType,
			"status":     targetStatus,
			"resolver":   userID,
		})
		outboxMsg := &model.OutboxMessage{
			MessageKey: audit.AuditNo,
			Topic:      s.auditEventTopic(),
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

	log.Printf("审核已定论: auditNo=%s, status=%s, resolver=%d", audit.AuditNo, targetStatus, userID)

	return s.auditRepo.GetByID(ctx, audit.ID)
}

// applyApprovedAudit 按审核类型把记录的变更应用到销售单
// edit 类型没有可应用的字段，审批结论照常记录，销售单不动
func (s *AuditService) applyApprovedAudit(ctx context.Context, tx *gorm.DB, audit *model.SalesAudit) error {
	switch audit.AuditType {
	case model.AuditTypeQuantityChange:
		boxes := audit.BoxesBefore
		if audit.BoxesAfter != nil {
			boxes = *audit.BoxesAfter
		}
		kg := audit.KgBefore
		if audit.KgAfter != nil {
			kg = *audit.KgAfter
		}
		return s.saleRepo.UpdateQuantities(ctx, tx, audit.SaleID, boxes, kg)

	case model.AuditTypePaymentMethodChange:
		paymentMethod := audit.PaymentMethodBefore
		if audit.PaymentMethodAfter != nil {
			paymentMethod = *audit.PaymentMethodAfter
		}
		return s.saleRepo.UpdatePaymentMethod(ctx, tx, audit.SaleID, paymentMethod)

	case model.AuditTypeDeletion:
		return s.saleRepo.Delete(ctx, tx, audit.SaleID)

	default:
		return nil
	}
}

func (s *AuditService) auditEventTopic() string {
	if s.cfg != nil && s.cfg.Kafka.Topic.AuditEvent != "" {
		return s.cfg.Kafka.Topic.AuditEvent
	}
	return "bizdesk_audit_event"
}
