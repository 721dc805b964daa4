package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredhq/kindred/internal/model"
)

func TestPreferenceStub(t *testing.T) {
	ctx := context.Background()
	svc := NewPreferenceService()

	if err := svc.Set(ctx, "u1", "theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := svc.Delete(ctx, "u1", "theme"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "u1", "theme"); !errors.Is(err, model.ErrNotImplemented) {
		t.Fatalf("Get err = %v, want ErrNotImplemented", err)
	}
}
