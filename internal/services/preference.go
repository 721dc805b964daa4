package services

import (
	"context"

	"github.com/kindredhq/kindred/internal/model"
)

// PreferenceService is a declared concept with no behavior yet. Set and
// Delete accept and discard their input; Get reports ErrNotImplemented.
type PreferenceService struct{}

func NewPreferenceService() *PreferenceService { return &PreferenceService{} }

func (s *PreferenceService) Set(ctx context.Context, userID, key, value string) error {
	return nil
}

func (s *PreferenceService) Get(ctx context.Context, userID, key string) (*model.Preference, error) {
	return nil, model.ErrNotImplemented
}

func (s *PreferenceService) Delete(ctx context.Context, userID, key string) error {
	return nil
}
