package service

import (
	"context"
	"errors"
	"testing"

	"bizdesk/internal/repository"
)

func TestDeleteFolderNotEmpty(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDocumentService(db)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, 1, "发票", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := svc.CreateDocument(ctx, 1, &CreateDocumentRequest{
		Name:       "2026-08 进货发票.pdf",
		Type:       "invoice",
		Size:       1024,
		StorageKey: "docs/2026/08/invoice.pdf",
		FolderID:   &folder.ID,
	}); err != nil {
		t.Fatalf("create document: %v", err)
	}

	if err := svc.DeleteFolder(ctx, 1, folder.ID); !errors.Is(err, repository.ErrFolderNotEmpty) {
		t.Fatalf("expected ErrFolderNotEmpty, got %v", err)
	}
}

func TestDeleteFolderWithSubfolder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDocumentService(db)
	ctx := context.Background()

	parent, err := svc.CreateFolder(ctx, 1, "合同", nil)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := svc.CreateFolder(ctx, 1, "2026", &parent.ID); err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := svc.DeleteFolder(ctx, 1, parent.ID); !errors.Is(err, repository.ErrFolderNotEmpty) {
		t.Fatalf("expected ErrFolderNotEmpty, got %v", err)
	}
}

func TestDeleteEmptyFolder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDocumentService(db)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, 1, "临时", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if err := svc.DeleteFolder(ctx, 1, folder.ID); err != nil {
		t.Fatalf("delete empty folder: %v", err)
	}
}

func TestCreateDocumentCrossUserFolder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDocumentService(db)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, 1, "票据", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	_, err = svc.CreateDocument(ctx, 2, &CreateDocumentRequest{
		Name:       "别人的票.pdf",
		Type:       "receipt",
		StorageKey: "docs/receipt.pdf",
		FolderID:   &folder.ID,
	})
	if !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}
