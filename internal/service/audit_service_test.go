package service

import (
	"context"
	"errors"
	"testing"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"
)

func TestProposeChangeLeavesSaleUntouched(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-A1", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 200)

	svc := NewAuditService(db, nil, nil)
	audit, err := svc.ProposeChange(context.Background(), 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(3),
		Reason:        "少发了一箱",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	if audit.ApprovalStatus != model.ApprovalStatusPending {
		t.Fatalf("expected pending, got %s", audit.ApprovalStatus)
	}
	if audit.AuditType != model.AuditTypeQuantityChange {
		t.Fatalf("expected quantity_change, got %s", audit.AuditType)
	}
	if audit.BoxesBefore != 4 || audit.BoxesAfter == nil || *audit.BoxesAfter != 3 {
		t.Fatalf("bad snapshot: before=%v after=%v", audit.BoxesBefore, audit.BoxesAfter)
	}

	// 提案不改销售单
	var reloaded model.Sale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.BoxesQuantity != 4 {
		t.Fatalf("sale changed by proposal: boxes=%v", reloaded.BoxesQuantity)
	}
}

func TestProposeChangeRequiresReason(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-A2", 10)
	sale := createTestSale(t, db, 1, product.ID, 2, 200)

	svc := NewAuditService(db, nil, nil)
	_, err := svc.ProposeChange(context.Background(), 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(1),
	})
	if !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestProposeChangeOwnership(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-A3", 10)
	sale := createTestSale(t, db, 1, product.ID, 2, 200)

	svc := NewAuditService(db, nil, nil)
	_, err := svc.ProposeChange(context.Background(), 2, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(1),
		Reason:        "蹭别人的单子",
	})
	if !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	var count int64
	if err := db.Model(&model.SalesAudit{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no audit rows, got %d", count)
	}
}

func TestResolveApproveQuantityChange(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-B1", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 400)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(3),
		KgQuantity:    floatPtr(0),
		Reason:        "客户退了一箱",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	resolved, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusApproved, "核实无误")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ApprovalStatus != model.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", resolved.ApprovalStatus)
	}
	if resolved.ApprovedBy == nil || *resolved.ApprovedBy != 1 {
		t.Fatalf("expected approver stamp, got %v", resolved.ApprovedBy)
	}
	if resolved.ApprovedAt == nil {
		t.Fatalf("expected approval timestamp")
	}

	var reloaded model.Sale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.BoxesQuantity != 3 {
		t.Fatalf("expected applied quantity 3, got %v", reloaded.BoxesQuantity)
	}
}

func TestResolveApprovePaymentMethodChange(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-B2", 10)
	sale := createTestSale(t, db, 1, product.ID, 2, 200)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		PaymentMethod: strPtr("transfer"),
		Reason:        "实际走的转账",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if audit.AuditType != model.AuditTypePaymentMethodChange {
		t.Fatalf("expected payment_method_change, got %s", audit.AuditType)
	}

	if _, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusApproved, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var reloaded model.Sale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.PaymentMethod != "transfer" {
		t.Fatalf("expected transfer, got %s", reloaded.PaymentMethod)
	}
	// 数量类字段不受收款方式审批影响
	if reloaded.BoxesQuantity != 2 {
		t.Fatalf("quantity changed unexpectedly: %v", reloaded.BoxesQuantity)
	}
}

func TestResolveRejectLeavesSaleUntouched(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-C1", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 400)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(1),
		Reason:        "说是多算了",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	resolved, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusRejected, "与出库单不符")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ApprovalStatus != model.ApprovalStatusRejected {
		t.Fatalf("expected rejected, got %s", resolved.ApprovalStatus)
	}
	if resolved.ApprovalReason != "与出库单不符" {
		t.Fatalf("expected approval reason, got %q", resolved.ApprovalReason)
	}

	var reloaded model.Sale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.BoxesQuantity != 4 {
		t.Fatalf("rejected audit must not touch sale, boxes=%v", reloaded.BoxesQuantity)
	}
}

func TestResolveTwiceIsRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-D1", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 400)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(3),
		Reason:        "退货一箱",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	if _, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusRejected, ""); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// 终态不可改写，approved 也进不去
	_, err = svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusApproved, "")
	if !errors.Is(err, repository.ErrAuditAlreadyResolved) {
		t.Fatalf("expected ErrAuditAlreadyResolved, got %v", err)
	}

	var reloaded model.Sale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.BoxesQuantity != 4 {
		t.Fatalf("rejected-then-approved must not apply, boxes=%v", reloaded.BoxesQuantity)
	}
}

func TestResolveOwnership(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-D3", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 400)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(1),
		Reason:        "退货",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	// 别人的审核单批不了
	_, err = svc.Resolve(ctx, 2, audit.ID, model.ApprovalStatusApproved, "")
	if !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	var reloadedAudit model.SalesAudit
	if err := db.First(&reloadedAudit, audit.ID).Error; err != nil {
		t.Fatalf("reload audit: %v", err)
	}
	if reloadedAudit.ApprovalStatus != model.ApprovalStatusPending {
		t.Fatalf("audit changed by foreign resolver: %s", reloadedAudit.ApprovalStatus)
	}
	if reloadedAudit.ApprovedBy != nil {
		t.Fatalf("unexpected approver stamp: %v", reloadedAudit.ApprovedBy)
	}

	var reloadedSale model.Sale
	if err := db.First(&reloadedSale, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloadedSale.BoxesQuantity != 4 {
		t.Fatalf("sale changed by foreign resolver: boxes=%v", reloadedSale.BoxesQuantity)
	}
}

func TestResolveInvalidStatus(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-D2", 10)
	sale := createTestSale(t, db, 1, product.ID, 2, 200)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(1),
		Reason:        "数错了",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}

	if _, err := svc.Resolve(ctx, 1, audit.ID, "pending", ""); err == nil {
		t.Fatalf("expected error for invalid target status")
	}
}

func TestEditAuditApprovalLeavesSaleUntouched(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-D4", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 200)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()

	// 既没改数量也没改收款方式，归为 edit，只留痕
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID: sale.ID,
		Reason: "客户名写错了，线下已更正",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if audit.AuditType != model.AuditTypeEdit {
		t.Fatalf("expected edit, got %s", audit.AuditType)
	}

	resolved, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusApproved, "备案通过")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ApprovalStatus != model.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", resolved.ApprovalStatus)
	}
	if resolved.ApprovedBy == nil || *resolved.ApprovedBy != 1 {
		t.Fatalf("expected approver stamp, got %v", resolved.ApprovedBy)
	}
	if resolved.ApprovedAt == nil {
		t.Fatalf("expected approval timestamp")
	}

	// 备案类审批通过也不碰销售单
	var reloaded model.Sale
	if err := db.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.BoxesQuantity != sale.BoxesQuantity ||
		reloaded.KgQuantity != sale.KgQuantity ||
		reloaded.PaymentMethod != sale.PaymentMethod ||
		reloaded.AmountPaid != sale.AmountPaid ||
		reloaded.TotalAmount != sale.TotalAmount {
		t.Fatalf("edit approval must not touch sale: %+v vs %+v", reloaded, sale)
	}
}

func TestProposeDeletionAndApprove(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-E1", 10)
	sale := createTestSale(t, db, 1, product.ID, 4, 400)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeDeletion(ctx, 1, sale.ID, "重复录入")
	if err != nil {
		t.Fatalf("propose deletion: %v", err)
	}
	if audit.AuditType != model.AuditTypeDeletion {
		t.Fatalf("expected deletion, got %s", audit.AuditType)
	}
	if audit.NewValues != nil {
		t.Fatalf("deletion proposal must not carry target values")
	}

	// 提案阶段销售单还在
	var count int64
	if err := db.Model(&model.Sale{}).Where("id = ?", sale.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("sale deleted before approval")
	}

	if _, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusApproved, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if err := db.Model(&model.Sale{}).Where("id = ?", sale.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("sale should be deleted after approval")
	}
}

func TestResolveWritesOutboxEvent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	product := seedProduct(t, db, 1, "SKU-F1", 10)
	sale := createTestSale(t, db, 1, product.ID, 2, 200)

	svc := NewAuditService(db, nil, nil)
	ctx := context.Background()
	audit, err := svc.ProposeChange(ctx, 1, &ProposeChangeRequest{
		SaleID:        sale.ID,
		BoxesQuantity: floatPtr(1),
		Reason:        "退货",
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, err := svc.Resolve(ctx, 1, audit.ID, model.ApprovalStatusApproved, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var msg model.OutboxMessage
	if err := db.Where("message_key = ?", audit.AuditNo).First(&msg).Error; err != nil {
		t.Fatalf("expected outbox event for audit: %v", err)
	}
	if msg.Status != model.OutboxStatusPending {
		t.Fatalf("expected pending outbox status, got %s", msg.Status)
	}
}
