package handler

import (
	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 销售相关接口
// ============================================================

// CreateSale 创建销售单（扣库存、记流水、挂账一次完成）
// POST /api/v1/sale/create
func (h *Handler) CreateSale(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, sale)
}

// ListSales 销售单列表，可按收款状态过滤
// GET /api/v1/sale/list?payment_status=pending
func (h *Handler) ListSales(c *gin.Context) {
	sales, err := h.saleService.ListSales(c.Request.Context(), currentUserID(c), c.Query("payment_status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, sales)
}

// GetSale 销售单详情
// GET /api/v1/sale/:id
func (h *Handler) GetSale(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), currentUserID(c), saleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, sale)
}

// AddPaymentRequest 补收款请求
type AddPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
}

// AddPayment 对欠款销售单补收款
// POST /api/v1/sale/:id/payment
func (h *Handler) AddPayment(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	sale, err := h.saleService.AddPayment(c.Request.Context(), currentUserID(c), saleID, req.Amount, req.PaymentMethod)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, sale)
}

// DeleteSale 直接删除销售单，库存不回补
// DELETE /api/v1/sale/:id
func (h *Handler) DeleteSale(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), currentUserID(c), saleID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}

// GetSaleStats 销售统计
// GET /api/v1/sale/stats?period=daily
func (h *Handler) GetSaleStats(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodDaily)

	stats, err := h.saleService.GetStats(c.Request.Context(), currentUserID(c), period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, stats)
}

// ============================================================
// 销售审核相关接口
// ============================================================

// ProposeAuditChange 提交销售单修改提案，销售单本身不动
// POST /api/v1/audit/propose
func (h *Handler) ProposeAuditChange(c *gin.Context) {
	var req service.ProposeChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	audit, err := h.auditService.ProposeChange(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, audit)
}

// ProposeDeletionRequest 删除提案请求
type ProposeDeletionRequest struct {
	SaleID int64  `json:"sale_id" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ProposeAuditDeletion 提交销售单删除提案
// POST /api/v1/audit/propose-deletion
func (h *Handler) ProposeAuditDeletion(c *gin.Context) {
	var req ProposeDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	audit, err := h.auditService.ProposeDeletion(c.Request.Context(), currentUserID(c), req.SaleID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, audit)
}

// ListAudits 审核记录列表
// GET /api/v1/audit/list
func (h *Handler) ListAudits(c *gin.Context) {
	audits, err := h.auditService.ListAudits(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, audits)
}

// ResolveAuditRequest 审批请求
type ResolveAuditRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

// ResolveAudit 审批提案，approved 时落地变更
// POST /api/v1/audit/:id/resolve
func (h *Handler) ResolveAudit(c *gin.Context) {
	auditID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ResolveAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	audit, err := h.auditService.Resolve(c.Request.Context(), currentUserID(c), auditID, req.Status, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, audit)
}
