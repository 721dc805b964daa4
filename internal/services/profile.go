package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// ProfileService manages the single public profile each user may carry.
type ProfileService struct {
	store store.Store
}

func NewProfileService(s store.Store) *ProfileService { return &ProfileService{store: s} }

// CreateProfile creates userID's profile. A second create fails with
// ErrConflict until the existing profile is deleted.
func (s *ProfileService) CreateProfile(ctx context.Context, userID, name string, contact, bio *string) (*model.Profile, error) {
	if _, err := s.store.Profiles().GetByUser(ctx, userID); err == nil {
		return nil, fmt.Errorf("user %s already has a profile: %w", userID, model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return s.store.Profiles().Create(ctx, &model.Profile{UserID: userID, Name: name, Contact: contact, Bio: bio})
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return s.store.Profiles().GetByUser(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.Profile, error) {
	return s.store.Profiles().Update(ctx, userID, upd)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.store.Profiles().DeleteByUser(ctx, userID)
}
