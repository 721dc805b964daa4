package services

import (
	"context"
	"fmt"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// FriendService manages friend requests and the symmetric friendship edges
// they produce.
type FriendService struct {
	store store.Store
}

func NewFriendService(s store.Store) *FriendService { return &FriendService{store: s} }

// SendRequest creates a pending request from fromID to toID. Duplicate
// requests between the same pair are not rejected here.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID string) (*model.FriendRequest, error) {
	if fromID == toID {
		return nil, fmt.Errorf("cannot friend yourself: %w", model.ErrBadValues)
	}
	if _, err := s.store.Users().Get(ctx, toID); err != nil {
		return nil, err
	}
	return s.store.Friends().CreateRequest(ctx, &model.FriendRequest{FromID: fromID, ToID: toID})
}

// ListRequests returns pending requests where userID is sender or addressee.
func (s *FriendService) ListRequests(ctx context.Context, userID string) ([]*model.FriendRequest, error) {
	return s.store.Friends().ListRequests(ctx, userID)
}

// AcceptRequest consumes the request and creates the friendship. Only the
// addressee may accept.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, userID string) (*model.Friendship, error) {
	req, err := s.store.Friends().GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToID != userID {
		return nil, fmt.Errorf("user %s is not the addressee of request %s: %w", userID, requestID, model.ErrNotAllowed)
	}
	return s.store.Friends().AcceptRequest(ctx, requestID)
}

// RejectRequest discards the request. Only the addressee may reject.
func (s *FriendService) RejectRequest(ctx context.Context, requestID, userID string) error {
	req, err := s.store.Friends().GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToID != userID {
		return fmt.Errorf("user %s is not the addressee of request %s: %w", userID, requestID, model.ErrNotAllowed)
	}
	return s.store.Friends().DeleteRequest(ctx, requestID)
}

// CancelRequest withdraws a pending request. Only the sender may cancel.
func (s *FriendService) CancelRequest(ctx context.Context, requestID, userID string) error {
	req, err := s.store.Friends().GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.FromID != userID {
		return fmt.Errorf("user %s did not send request %s: %w", userID, requestID, model.ErrNotAllowed)
	}
	return s.store.Friends().DeleteRequest(ctx, requestID)
}

func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]*model.Friendship, error) {
	return s.store.Friends().ListFriends(ctx, userID)
}

// RemoveFriend dissolves the edge between two users, from either side.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, otherID string) error {
	return s.store.Friends().DeleteFriendship(ctx, userID, otherID)
}
