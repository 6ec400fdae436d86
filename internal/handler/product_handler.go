package handler

import (
	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 商品/库存相关接口
// ============================================================

// CreateProduct 创建商品
// POST /api/v1/product/create
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, product)
}

// ListProducts 商品列表，支持分类过滤与名称/SKU模糊搜索
// GET /api/v1/product/list?category=xxx&search=xxx
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context(), currentUserID(c),
		c.Query("category"), c.Query("search"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, products)
}

// GetProduct 商品详情
// GET /api/v1/product/:id
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), currentUserID(c), productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, product)
}

// UpdateProductRequest 商品更新请求，未提交的字段保持原值
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	CostPerBox  *float64 `json:"cost_per_box"`
	CostPerKg   *float64 `json:"cost_per_kg"`
	PricePerBox *float64 `json:"price_per_box"`
	PricePerKg  *float64 `json:"price_per_kg"`
	MinStockBox *float64 `json:"min_stock_box"`
	ImageURL    *string  `json:"image_url"`
}

// UpdateProduct 更新商品
// PUT /api/v1/product/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CostPerBox != nil {
		updates["cost_per_box"] = *req.CostPerBox
	}
	if req.CostPerKg != nil {
		updates["cost_per_kg"] = *req.CostPerKg
	}
	if req.PricePerBox != nil {
		updates["price_per_box"] = *req.PricePerBox
	}
	if req.PricePerKg != nil {
		updates["price_per_kg"] = *req.PricePerKg
	}
	if req.MinStockBox != nil {
		updates["min_stock_box"] = *req.MinStockBox
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		response.ParamError(c, "没有需要更新的字段")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), currentUserID(c), productID, updates)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, product)
}

// AdjustStockRequest 库存调整请求
type AdjustStockRequest struct {
	AdjustBox float64 `json:"adjust_box"`
	AdjustKg  float64 `json:"adjust_kg"`
	Reason    string  `json:"reason" binding:"required"`
}

// AdjustStock 手工调整库存（盘点、进货、损耗）
// POST /api/v1/product/:id/adjust-stock
func (h *Handler) AdjustStock(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), currentUserID(c),
		productID, req.AdjustBox, req.AdjustKg, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, product)
}

// GetLowStock 低库存商品列表
// GET /api/v1/product/low-stock
func (h *Handler) GetLowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, products)
}
