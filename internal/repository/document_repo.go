package repository

import (
	"context"
	"errors"

	"bizdesk/internal/model"

	"gorm.io/gorm"
)

var (
	ErrFolderNotFound   = errors.New("文件夹不存在")
	ErrFolderNotEmpty   = errors.New("文件夹非空，不允许删除")
	ErrDocumentNotFound = errors.New("文档不存在")
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ============================================================
// 文件夹
// ============================================================

func (r *DocumentRepository) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *DocumentRepository) GetFolderByID(ctx context.Context, id int64) (*model.Folder, error) {
	var folder model.Folder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return &folder, nil
}

// ListFolders 列出某目录下的子文件夹，parentID 为 nil 时列根目录
func (r *DocumentRepository) ListFolders(ctx context.Context, userID int64, parentID *int64) ([]*model.Folder, error) {
	var folders []*model.Folder
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}
	err := query.Order("name ASC").Find(&folders).Error
	return folders, err
}

// CountFolderChildren 统计文件夹下的子文件夹与文档数量
func (r *DocumentRepository) CountFolderChildren(ctx context.Context, folderID int64) (int64, error) {
	var folderCount, docCount int64
	if err := r.db.WithContext(ctx).
		Model(&model.Folder{}).
		Where("parent_id = ?", folderID).
		Count(&folderCount).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("folder_id = ?", folderID).
		Count(&docCount).Error; err != nil {
		return 0, err
	}
	return folderCount + docCount, nil
}

func (r *DocumentRepository) DeleteFolder(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Folder{}, id).Error
}

// ============================================================
// 文档
// ============================================================

func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id int64) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListDocuments 列出文档，支持按文件夹和类型过滤
func (r *DocumentRepository) ListDocuments(ctx context.Context, userID int64, folderID *int64, docType string) ([]*model.Document, error) {
	var docs []*model.Document
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	}
	if docType != "" {
		query = query.Where("type = ?", docType)
	}
	err := query.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}
