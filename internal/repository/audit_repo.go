package repository

import (
	"context"
	"errors"
	"time"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var (
	ErrAuditNotFound        = errors.New("审核记录不存在")
	ErrAuditAlreadyResolved = errors.New("审核已有结论，不允许重复审批")
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, tx *gorm.DB, audit *model.SalesAudit) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(audit).Error
}

func (r *AuditRepository) GetByID(ctx context.Context, id int64) (*model.SalesAudit, error) {
	var audit model.SalesAudit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&audit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}
	return &audit, nil
}

// GetOwned 按主键取审核记录并校验归属
func (r *AuditRepository) GetOwned(ctx context.Context, id, userID int64) (*model.SalesAudit, error) {
	audit, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if audit.UserID != userID {
		return nil, ErrAccessDenied
	}
	return audit, nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID int64) ([]*model.SalesAudit, error) {
	var audits []*model.SalesAudit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&audits).Error
	return audits, err
}

// UpdateApproval 把审核记录从 pending 置为终态
//
// 【关键点】WHERE 条件带上 approval_status = 'pending'，
// 数据库层保证同一条审核只能被审批一次（RowsAffected=0 即已被他人抢先审批）
func (r *AuditRepository) UpdateApproval(ctx context.Context, tx *gorm.DB, id int64, targetStatus string, resolverID int64, reason string) error {
	if !model.CanTransitionApproval(model.ApprovalStatusPending, targetStatus) {
		return ErrAuditAlreadyResolved
	}

	if tx == nil {
		tx = r.db
	}

	now := time.Now()
	updates := map[string]interface{}{
		"approval_status": targetStatus,
		"approved_by":     resolverID,
		"approved_at":     &now,
	}
	if reason != "" {
		updates["approval_reason"] = reason
	}

	result := tx.WithContext(ctx).
		Model(&model.SalesAudit{}).
		Where("id = ? AND approval_status = ?", id, model.ApprovalStatusPending).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAuditAlreadyResolved
	}
	return nil
}

// ListStalePending 查询长时间无人审批的记录（供后台提醒任务使用）
func (r *AuditRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*model.SalesAudit, error) {
	var audits []*model.SalesAudit
	err := r.db.WithContext(ctx).
		Where("approval_status = ? AND created_at < ?", model.ApprovalStatusPending, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&audits).Error
	return audits, err
}
