package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kindredhq/kindred/internal/auth"
	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// SessionTTL is the maximum age of a session.
const SessionTTL = 24 * time.Hour

// SessionService issues and resolves bearer session tokens. The raw token is
// returned to the client exactly once; only its hash is stored.
type SessionService struct {
	store store.Store
}

func NewSessionService(s store.Store) *SessionService { return &SessionService{store: s} }

// Start opens a session for userID and returns the raw token alongside the
// stored record.
func (s *SessionService) Start(ctx context.Context, userID string) (string, *model.Session, error) {
	tp, err := auth.NewTokenPair()
	if err != nil {
		return "", nil, err
	}
	sess, err := s.store.Sessions().Create(ctx, &model.Session{
		UserID:    userID,
		TokenHash: tp.Hash,
		ExpiresAt: time.Now().UTC().Add(SessionTTL),
	})
	if err != nil {
		return "", nil, err
	}
	return tp.Token, sess, nil
}

// Resolve maps a raw token to its session. Expired sessions are deleted on
// the spot and reported as ErrNotAllowed.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.Session, error) {
	sess, err := s.store.Sessions().GetByHash(ctx, auth.HashToken(token))
	if err != nil {
		return nil, err
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.store.Sessions().DeleteByHash(ctx, sess.TokenHash)
		return nil, fmt.Errorf("session expired: %w", model.ErrNotAllowed)
	}
	return sess, nil
}

// End terminates the session for the given raw token.
func (s *SessionService) End(ctx context.Context, token string) error {
	return s.store.Sessions().DeleteByHash(ctx, auth.HashToken(token))
}

// EndAll terminates every session belonging to userID.
func (s *SessionService) EndAll(ctx context.Context, userID string) error {
	return s.store.Sessions().DeleteByUser(ctx, userID)
}

// PurgeExpired removes expired sessions and reports how many were removed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int, error) {
	return s.store.Sessions().DeleteExpired(ctx, time.Now().UTC())
}
