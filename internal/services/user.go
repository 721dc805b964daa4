package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kindredhq/kindred/internal/auth"
	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// UserService handles registration, authentication and account maintenance.
type UserService struct {
	store store.Store
	pw    auth.PasswordHandler
}

func NewUserService(s store.Store, pw auth.PasswordHandler) *UserService {
	return &UserService{store: s, pw: pw}
}

// Register creates an account. Usernames are unique; a taken name yields
// ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if _, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username %q is taken: %w", username, model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	hash, err := s.pw.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.store.Users().Create(ctx, &model.User{Username: username, PasswordHash: hash})
}

// Authenticate resolves username+password to the account. Unknown usernames
// and bad passwords both yield ErrNotAllowed so callers cannot probe for
// account existence.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", model.ErrNotAllowed)
		}
		return nil, err
	}
	ok, err := s.pw.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("invalid credentials: %w", model.ErrNotAllowed)
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.store.Users().GetByUsername(ctx, username)
}

func (s *UserService) UpdateUsername(ctx context.Context, userID, username string) (*model.User, error) {
	if existing, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		if existing.UserID == userID {
			return existing, nil
		}
		return nil, fmt.Errorf("username %q is taken: %w", username, model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return s.store.Users().Update(ctx, userID, &username, nil)
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, password string) (*model.User, error) {
	hash, err := s.pw.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.store.Users().Update(ctx, userID, nil, &hash)
}

// DeleteUser removes the account along with its sessions and profile.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.store.Users().Get(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Sessions().DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Profiles().DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.store.Users().Delete(ctx, userID)
}
