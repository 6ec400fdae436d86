package handler

import (
	"bizdesk/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	// 设置 gin 为发布模式（减少日志输出）
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 注册中间件
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	// 创建处理器
	h := NewHandler(db, rdb, cfg)

	// API 路由组，业务接口都要求带用户身份
	api := r.Group("/api/v1")
	api.Use(AuthMiddleware())
	{
		// 商品/库存
		product := api.Group("/product")
		{
			product.POST("/create", h.CreateProduct)
			product.GET("/list", h.ListProducts)
			product.GET("/low-stock", h.GetLowStock)
			product.GET("/:id", h.GetProduct)
			product.PUT("/:id", h.UpdateProduct)
			product.POST("/:id/adjust-stock", h.AdjustStock)
		}

		// 销售
		sale := api.Group("/sale")
		{
			sale.POST("/create", h.CreateSale)
			sale.GET("/list", h.ListSales)
			sale.GET("/stats", h.GetSaleStats)
			sale.GET("/:id", h.GetSale)
			sale.DELETE("/:id", h.DeleteSale)
			sale.POST("/:id/payment", h.AddPayment)
		}

		// 销售审核
		audit := api.Group("/audit")
		{
			audit.POST("/propose", h.ProposeAuditChange)
			audit.POST("/propose-deletion", h.ProposeAuditDeletion)
			audit.GET("/list", h.ListAudits)
			audit.POST("/:id/resolve", h.ResolveAudit)
		}

		// 客户
		customer := api.Group("/customer")
		{
			customer.POST("/create", h.CreateCustomer)
			customer.GET("/list", h.ListCustomers)
			customer.PUT("/:id", h.UpdateCustomer)
			customer.GET("/:id/transactions", h.GetCustomerTransactions)
		}

		// 交易流水
		transaction := api.Group("/transaction")
		{
			transaction.POST("/create", h.CreateTransaction)
			transaction.GET("/list", h.ListTransactions)
			transaction.PUT("/:transaction_no", h.UpdateTransaction)
			transaction.DELETE("/:transaction_no", h.DeleteTransaction)
		}

		// 存款凭证
		deposit := api.Group("/deposit")
		{
			deposit.POST("/create", h.CreateDeposit)
			deposit.GET("/list", h.ListDeposits)
			deposit.GET("/:deposit_no", h.GetDeposit)
			deposit.PUT("/:deposit_no", h.UpdateDeposit)
			deposit.DELETE("/:deposit_no", h.DeleteDeposit)
		}

		// 支出与分类
		expense := api.Group("/expense")
		{
			expense.POST("/category/create", h.CreateExpenseCategory)
			expense.GET("/category/list", h.ListExpenseCategories)
			expense.PUT("/category/:id", h.UpdateExpenseCategory)
			expense.DELETE("/category/:id", h.DeleteExpenseCategory)
			expense.POST("/create", h.CreateExpense)
			expense.GET("/list", h.ListExpenses)
			expense.GET("/stats", h.GetExpenseStats)
		}

		// 文件夹与文档
		folder := api.Group("/folder")
		{
			folder.POST("/create", h.CreateFolder)
			folder.GET("/list", h.ListFolders)
			folder.DELETE("/:id", h.DeleteFolder)
		}
		document := api.Group("/document")
		{
			document.POST("/create", h.CreateDocument)
			document.GET("/list", h.ListDocuments)
			document.DELETE("/:id", h.DeleteDocument)
		}

		// 系统配置
		setting := api.Group("/setting")
		{
			setting.GET("/list", h.GetSettings)
			setting.POST("/update", h.UpdateSetting)
			setting.GET("/:key", h.GetSetting)
		}

		// 员工
		staff := api.Group("/staff")
		{
			staff.POST("/create", h.CreateStaff)
			staff.GET("/list", h.ListStaff)
			staff.GET("/check-email", h.CheckStaffEmail)
			staff.DELETE("/:id", h.RemoveStaff)
		}

		// 报表
		report := api.Group("/report")
		{
			report.GET("/sales", h.GetSalesReport)
			report.GET("/inventory", h.GetInventoryReport)
			report.GET("/expenses", h.GetExpenseReport)
		}

		// 看板
		api.GET("/dashboard/stats", h.GetDashboardStats)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
