package service

import (
	"context"
	"fmt"

	"bizdesk/internal/model"
	"bizdesk/internal/repository"

	"gorm.io/gorm"
)

type DocumentService struct {
	documentRepo *repository.DocumentRepository
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{
		documentRepo: repository.NewDocumentRepository(db),
	}
}

// ============================================================
// 文件夹
// ============================================================

func (s *DocumentService) CreateFolder(ctx context.Context, userID int64, name string, parentID *int64) (*model.Folder, error) {
	if parentID != nil {
		parent, err := s.documentRepo.GetFolderByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.UserID != userID {
			return nil, repository.ErrAccessDenied
		}
	}

	folder := &model.Folder{
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
	}
	if err := s.documentRepo.CreateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("创建文件夹失败: %w", err)
	}
	return folder, nil
}

func (s *DocumentService) ListFolders(ctx context.Context, userID int64, parentID *int64) ([]*model.Folder, error) {
	return s.documentRepo.ListFolders(ctx, userID, parentID)
}

// DeleteFolder 删除文件夹，里面还有子文件夹或文档时拒绝
func (s *DocumentService) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	folder, err := s.documentRepo.GetFolderByID(ctx, folderID)
	if err != nil {
		return err
	}
	if folder.UserID != userID {
		return repository.ErrAccessDenied
	}

	children, err := s.documentRepo.CountFolderChildren(ctx, folderID)
	if err != nil {
		return err
	}
	if children > 0 {
		return repository.ErrFolderNotEmpty
	}
	return s.documentRepo.DeleteFolder(ctx, folderID)
}

// ============================================================
// 文档
// ============================================================

type CreateDocumentRequest struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Size       int64  `json:"size" binding:"gte=0"`
	StorageKey string `json:"storage_key" binding:"required"` // 外部对象存储返回的 key
	FolderID   *int64 `json:"folder_id"`
	Tags       string `json:"tags"`
}

func (s *DocumentService) CreateDocument(ctx context.Context, userID int64, req *CreateDocumentRequest) (*model.Document, error) {
	if req.FolderID != nil {
		folder, err := s.documentRepo.GetFolderByID(ctx, *req.FolderID)
		if err != nil {
			return nil, err
		}
		if folder.UserID != userID {
			return nil, repository.ErrAccessDenied
		}
	}

	doc := &model.Document{
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		Size:       req.Size,
		StorageKey: req.StorageKey,
		FolderID:   req.FolderID,
		Tags:       req.Tags,
	}
	if err := s.documentRepo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("创建文档失败: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, userID int64, folderID *int64, docType string) ([]*model.Document, error) {
	return s.documentRepo.ListDocuments(ctx, userID, folderID, docType)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, userID, documentID int64) error {
	doc, err := s.documentRepo.GetDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return repository.ErrAccessDenied
	}
	return s.documentRepo.DeleteDocument(ctx, documentID)
}
