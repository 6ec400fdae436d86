package service

import (
	"context"
	"errors"
	"testing"

	"bizdesk/internal/repository"
)

func TestCreateStaffDuplicateEmail(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewStaffService(db)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, &CreateStaffRequest{
		FullName: "李明",
		Email:    "liming@example.com",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, 1, &CreateStaffRequest{
		FullName: "另一个李明",
		Email:    "liming@example.com",
	})
	if !errors.Is(err, repository.ErrStaffEmailTaken) {
		t.Fatalf("expected ErrStaffEmailTaken, got %v", err)
	}
}

func TestStaffEmailExists(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewStaffService(db)
	ctx := context.Background()

	exists, err := svc.EmailExists(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if exists {
		t.Fatalf("unexpected exists for unknown email")
	}

	if _, err := svc.Create(ctx, 1, &CreateStaffRequest{
		FullName: "王芳",
		Email:    "wangfang@example.com",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err = svc.EmailExists(ctx, "wangfang@example.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !exists {
		t.Fatalf("expected email to exist")
	}
}

func TestSettingUpsert(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewSettingService(db)
	ctx := context.Background()

	created, err := svc.Update(ctx, "currency", "CNY", "general")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Value != "CNY" {
		t.Fatalf("expected CNY, got %s", created.Value)
	}

	updated, err := svc.Update(ctx, "currency", "USD", "general")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Value != "USD" {
		t.Fatalf("expected USD, got %s", updated.Value)
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert must not duplicate, got %d rows", len(all))
	}
}
