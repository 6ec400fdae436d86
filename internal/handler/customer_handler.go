package handler

import (
	"strconv"

	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 客户/欠款相关接口
// ============================================================

// CreateCustomer 创建客户
// POST /api/v1/customer/create
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, customer)
}

// parseBoolQuery 解析可选布尔查询参数，缺省返回 nil 表示不过滤
func parseBoolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// ListCustomers 客户列表，支持按活跃状态和是否有欠款过滤
// GET /api/v1/customer/list?is_active=true&has_balance=true
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context(), currentUserID(c),
		parseBoolQuery(c, "is_active"), parseBoolQuery(c, "has_balance"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, customers)
}

// UpdateCustomerRequest 客户更新请求，未提交的字段保持原值
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

// UpdateCustomer 更新客户资料
// PUT /api/v1/customer/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), currentUserID(c), customerID, updates)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, customer)
}

// GetCustomerTransactions 客户的历史销售单
// GET /api/v1/customer/:id/transactions
func (h *Handler) GetCustomerTransactions(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sales, err := h.customerService.GetTransactionHistory(c.Request.Context(), currentUserID(c), customerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, sales)
}

// ============================================================
// 交易流水相关接口
// ============================================================

// CreateTransaction 手工补录交易流水
// POST /api/v1/transaction/create
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	trans, err := h.transactionService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, trans)
}

// ListTransactions 交易流水列表
// GET /api/v1/transaction/list?payment_status=pending
func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactionService.List(c.Request.Context(), currentUserID(c), c.Query("payment_status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, transactions)
}

// UpdateTransaction 修正交易流水
// PUT /api/v1/transaction/:transaction_no
func (h *Handler) UpdateTransaction(c *gin.Context) {
	transactionNo := c.Param("transaction_no")
	if transactionNo == "" {
		response.ParamError(c, "transaction_no 参数错误")
		return
	}

	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	trans, err := h.transactionService.Update(c.Request.Context(), currentUserID(c), transactionNo, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, trans)
}

// DeleteTransaction 删除交易流水
// DELETE /api/v1/transaction/:transaction_no
func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionNo := c.Param("transaction_no")
	if transactionNo == "" {
		response.ParamError(c, "transaction_no 参数错误")
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), currentUserID(c), transactionNo); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}

// ============================================================
// 存款凭证相关接口
// ============================================================

// CreateDeposit 登记存款凭证
// POST /api/v1/deposit/create
func (h *Handler) CreateDeposit(c *gin.Context) {
	var req service.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	deposit, err := h.depositService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, deposit)
}

// ListDeposits 存款凭证列表
// GET /api/v1/deposit/list
func (h *Handler) ListDeposits(c *gin.Context) {
	deposits, err := h.depositService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, deposits)
}

// GetDeposit 存款凭证详情
// GET /api/v1/deposit/:deposit_no
func (h *Handler) GetDeposit(c *gin.Context) {
	depositNo := c.Param("deposit_no")
	if depositNo == "" {
		response.ParamError(c, "deposit_no 参数错误")
		return
	}

	deposit, err := h.depositService.GetByDepositNo(c.Request.Context(), currentUserID(c), depositNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, deposit)
}

// UpdateDeposit 修正存款凭证
// PUT /api/v1/deposit/:deposit_no
func (h *Handler) UpdateDeposit(c *gin.Context) {
	depositNo := c.Param("deposit_no")
	if depositNo == "" {
		response.ParamError(c, "deposit_no 参数错误")
		return
	}

	var req service.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	deposit, err := h.depositService.Update(c.Request.Context(), currentUserID(c), depositNo, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, deposit)
}

// DeleteDeposit 删除存款凭证
// DELETE /api/v1/deposit/:deposit_no
func (h *Handler) DeleteDeposit(c *gin.Context) {
	depositNo := c.Param("deposit_no")
	if depositNo == "" {
		response.ParamError(c, "deposit_no 参数错误")
		return
	}

	if err := h.depositService.Delete(c.Request.Context(), currentUserID(c), depositNo); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}
