package handler

import (
	"strconv"
	"time"

	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 支出分类相关接口
// ============================================================

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name   string   `json:"name" binding:"required"`
	Budget *float64 `json:"budget"`
}

// CreateExpenseCategory 创建支出分类
// POST /api/v1/expense/category/create
func (h *Handler) CreateExpenseCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	category, err := h.expenseService.CreateCategory(c.Request.Context(), currentUserID(c), req.Name, req.Budget)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, category)
}

// ListExpenseCategories 支出分类列表
// GET /api/v1/expense/category/list
func (h *Handler) ListExpenseCategories(c *gin.Context) {
	categories, err := h.expenseService.ListCategories(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, categories)
}

// UpdateExpenseCategory 更新支出分类
// PUT /api/v1/expense/category/:id
func (h *Handler) UpdateExpenseCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	category, err := h.expenseService.UpdateCategory(c.Request.Context(), currentUserID(c), categoryID, req.Name, req.Budget)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, category)
}

// DeleteExpenseCategory 删除支出分类，仍被引用时拒绝
// DELETE /api/v1/expense/category/:id
func (h *Handler) DeleteExpenseCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteCategory(c.Request.Context(), currentUserID(c), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}

// ============================================================
// 支出相关接口
// ============================================================

// CreateExpense 记一笔支出
// POST /api/v1/expense/create
func (h *Handler) CreateExpense(c *gin.Context) {
	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, expense)
}

// parseTimeQuery 解析 Unix 毫秒时间查询参数，缺省返回 nil
func parseTimeQuery(c *gin.Context, name string) *time.Time {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}

// ListExpenses 支出列表，支持分类与时间范围过滤
// GET /api/v1/expense/list?category_id=1&start=1700000000000&end=1700086400000
func (h *Handler) ListExpenses(c *gin.Context) {
	var categoryID int64
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.ParamError(c, "category_id 参数错误")
			return
		}
		categoryID = id
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), currentUserID(c),
		categoryID, parseTimeQuery(c, "start"), parseTimeQuery(c, "end"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, expenses)
}

// GetExpenseStats 支出统计
// GET /api/v1/expense/stats?period=monthly
func (h *Handler) GetExpenseStats(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodMonthly)

	stats, err := h.expenseService.GetStats(c.Request.Context(), currentUserID(c), period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, stats)
}
