package handler

import (
	"errors"
	"strconv"

	"bizdesk/internal/config"
	"bizdesk/internal/repository"
	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	productService     *service.ProductService
	saleService        *service.SaleService
	auditService       *service.AuditService
	customerService    *service.CustomerService
	transactionService *service.TransactionService
	depositService     *service.DepositService
	expenseService     *service.ExpenseService
	documentService    *service.DocumentService
	settingService     *service.SettingService
	staffService       *service.StaffService
	reportService      *service.ReportService
	dashboardService   *service.DashboardService
}

// NewHandler 创建处理器实例
func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Handler {
	return &Handler{
		productService:     service.NewProductService(db),
		saleService:        service.NewSaleService(db, cfg),
		auditService:       service.NewAuditService(db, rdb, cfg),
		customerService:    service.NewCustomerService(db),
		transactionService: service.NewTransactionService(db),
		depositService:     service.NewDepositService(db),
		expenseService:     service.NewExpenseService(db),
		documentService:    service.NewDocumentService(db),
		settingService:     service.NewSettingService(db),
		staffService:       service.NewStaffService(db),
		reportService:      service.NewReportService(db),
		dashboardService:   service.NewDashboardService(db),
	}
}

// handleServiceError 业务错误统一映射为响应码
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrAccessDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, repository.ErrSaleNotFound):
		response.BusinessError(c, response.CodeSaleNotFound, err.Error())
	case errors.Is(err, repository.ErrAuditNotFound):
		response.BusinessError(c, response.CodeAuditNotFound, err.Error())
	case errors.Is(err, repository.ErrAuditAlreadyResolved):
		response.BusinessError(c, response.CodeAuditResolved, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		response.BusinessError(c, response.CodeProductNotFound, err.Error())
	case errors.Is(err, repository.ErrCustomerNotFound):
		response.BusinessError(c, response.CodeCustomerNotFound, err.Error())
	case errors.Is(err, repository.ErrCategoryInUse):
		response.BusinessError(c, response.CodeCategoryInUse, err.Error())
	case errors.Is(err, repository.ErrFolderNotEmpty):
		response.BusinessError(c, response.CodeFolderNotEmpty, err.Error())
	case errors.Is(err, repository.ErrDuplicateSKU),
		errors.Is(err, repository.ErrCategoryDuplicate),
		errors.Is(err, repository.ErrStaffEmailTaken):
		response.BusinessError(c, response.CodeDuplicateRecord, err.Error())
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrExpenseNotFound),
		errors.Is(err, repository.ErrDepositNotFound),
		errors.Is(err, repository.ErrTransactionNotFound),
		errors.Is(err, repository.ErrFolderNotFound),
		errors.Is(err, repository.ErrDocumentNotFound),
		errors.Is(err, repository.ErrSettingNotFound),
		errors.Is(err, repository.ErrStaffNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrReasonRequired):
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}

// parseIDParam 解析路径上的数字ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, name+" 参数错误")
		return 0, false
	}
	return id, true
}
