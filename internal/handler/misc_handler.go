package handler

import (
	"time"

	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 系统配置相关接口
// ============================================================

// GetSettings 配置列表，支持按分组过滤
// GET /api/v1/setting/list?category=notification
func (h *Handler) GetSettings(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		settings, err := h.settingService.GetByCategory(c.Request.Context(), category)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.Success(c, settings)
		return
	}

	settings, err := h.settingService.GetAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, settings)
}

// GetSetting 单个配置项
// GET /api/v1/setting/:key
func (h *Handler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		response.ParamError(c, "key 参数错误")
		return
	}

	setting, err := h.settingService.Get(c.Request.Context(), key)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, setting)
}

// UpdateSettingRequest 配置更新请求
type UpdateSettingRequest struct {
	Key      string `json:"key" binding:"required"`
	Value    string `json:"value" binding:"required"`
	Category string `json:"category"`
}

// UpdateSetting 更新配置项，不存在则创建
// POST /api/v1/setting/update
func (h *Handler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	setting, err := h.settingService.Update(c.Request.Context(), req.Key, req.Value, req.Category)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, setting)
}

// ============================================================
// 员工相关接口
// ============================================================

// CreateStaff 登记员工
// POST /api/v1/staff/create
func (h *Handler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, staff)
}

// ListStaff 员工列表
// GET /api/v1/staff/list
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.staffService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, staff)
}

// CheckStaffEmail 邮箱占用检查
// GET /api/v1/staff/check-email?email=xxx
func (h *Handler) CheckStaffEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.ParamError(c, "email 参数错误")
		return
	}

	exists, err := h.staffService.EmailExists(c.Request.Context(), email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"exists": exists})
}

// RemoveStaff 移除员工
// DELETE /api/v1/staff/:id
func (h *Handler) RemoveStaff(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.Remove(c.Request.Context(), currentUserID(c), staffID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}

// ============================================================
// 报表相关接口
// ============================================================

// reportRange 报表时间范围，缺省最近30天
func reportRange(c *gin.Context) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if t := parseTimeQuery(c, "start"); t != nil {
		start = *t
	}
	if t := parseTimeQuery(c, "end"); t != nil {
		end = *t
	}
	return start, end
}

// GetSalesReport 销售报表
// GET /api/v1/report/sales?start=1700000000000&end=1700086400000
func (h *Handler) GetSalesReport(c *gin.Context) {
	start, end := reportRange(c)

	report, err := h.reportService.GetSalesReport(c.Request.Context(), currentUserID(c), start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, report)
}

// GetInventoryReport 库存报表
// GET /api/v1/report/inventory
func (h *Handler) GetInventoryReport(c *gin.Context) {
	report, err := h.reportService.GetInventoryReport(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, report)
}

// GetExpenseReport 支出报表
// GET /api/v1/report/expenses?start=1700000000000&end=1700086400000
func (h *Handler) GetExpenseReport(c *gin.Context) {
	start, end := reportRange(c)

	report, err := h.reportService.GetExpenseReport(c.Request.Context(), currentUserID(c), start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, report)
}

// ============================================================
// 首页看板接口
// ============================================================

// GetDashboardStats 看板统计
// GET /api/v1/dashboard/stats?period=daily
func (h *Handler) GetDashboardStats(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodDaily)

	stats, err := h.dashboardService.GetStats(c.Request.Context(), currentUserID(c), period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, stats)
}
