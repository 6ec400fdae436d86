package handler

import (
	"strconv"

	"bizdesk/internal/service"
	"bizdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// ============================================================
// 文件夹相关接口
// ============================================================

// CreateFolderRequest 创建文件夹请求
type CreateFolderRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// CreateFolder 创建文件夹，可嵌套
// POST /api/v1/folder/create
func (h *Handler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	folder, err := h.documentService.CreateFolder(c.Request.Context(), currentUserID(c), req.Name, req.ParentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, folder)
}

// parseOptionalIDQuery 解析可选数字ID查询参数，缺省返回 nil
func parseOptionalIDQuery(c *gin.Context, name string) *int64 {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// ListFolders 文件夹列表，parent_id 缺省列根目录
// GET /api/v1/folder/list?parent_id=1
func (h *Handler) ListFolders(c *gin.Context) {
	folders, err := h.documentService.ListFolders(c.Request.Context(), currentUserID(c),
		parseOptionalIDQuery(c, "parent_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, folders)
}

// DeleteFolder 删除文件夹，非空时拒绝
// DELETE /api/v1/folder/:id
func (h *Handler) DeleteFolder(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteFolder(c.Request.Context(), currentUserID(c), folderID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}

// ============================================================
// 文档相关接口
// ============================================================

// CreateDocument 登记文档元数据，文件本体在对象存储
// POST /api/v1/document/create
func (h *Handler) CreateDocument(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	document, err := h.documentService.CreateDocument(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, document)
}

// ListDocuments 文档列表，支持按文件夹和类型过滤
// GET /api/v1/document/list?folder_id=1&type=invoice
func (h *Handler) ListDocuments(c *gin.Context) {
	documents, err := h.documentService.ListDocuments(c.Request.Context(), currentUserID(c),
		parseOptionalIDQuery(c, "folder_id"), c.Query("type"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, documents)
}

// DeleteDocument 删除文档元数据
// DELETE /api/v1/document/:id
func (h *Handler) DeleteDocument(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), currentUserID(c), documentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "删除成功"})
}
