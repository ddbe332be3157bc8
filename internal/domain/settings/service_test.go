package settings

import (
	"context"
	"testing"

	"repairdesk/internal/core/apperror"
)

type fakeRepo struct {
	stored *Settings
}

func (r *fakeRepo) Get(ctx context.Context) (*Settings, error) {
	if r.stored == nil {
		return nil, apperror.NewNotFound("settings", "singleton")
	}
	cp := *r.stored
	return &cp, nil
}

func (r *fakeRepo) Save(ctx context.Context, s *Settings) error {
	cp := *s
	r.stored = &cp
	return nil
}

func TestService_GetFallsBackToDefaults(t *testing.T) {
	svc := NewService(&fakeRepo{})

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LowStockThreshold != Defaults().LowStockThreshold {
		t.Errorf("expected default threshold %d, got %d", Defaults().LowStockThreshold, got.LowStockThreshold)
	}
}

func TestService_UpdateRefreshesCache(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Update(ctx, &Settings{LowStockThreshold: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	threshold, err := svc.LowStockThreshold(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if threshold != 12 {
		t.Errorf("expected threshold 12, got %d", threshold)
	}
	if repo.stored == nil || repo.stored.LowStockThreshold != 12 {
		t.Error("settings were not persisted")
	}
}

func TestService_UpdateRejectsNegativeThreshold(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Update(context.Background(), &Settings{LowStockThreshold: -1})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
