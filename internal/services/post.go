package services

import (
	"context"
	"fmt"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// PostService handles authored posts.
type PostService struct {
	store store.Store
}

func NewPostService(s store.Store) *PostService { return &PostService{store: s} }

func (s *PostService) CreatePost(ctx context.Context, authorID, content string, options *string) (*model.Post, error) {
	return s.store.Posts().Create(ctx, &model.Post{AuthorID: authorID, Content: content, Options: options})
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return s.store.Posts().Get(ctx, postID)
}

func (s *PostService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return s.store.Posts().List(ctx)
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	return s.store.Posts().ListByAuthor(ctx, authorID)
}

func (s *PostService) UpdatePost(ctx context.Context, postID string, upd model.PostUpdate) (*model.Post, error) {
	return s.store.Posts().Update(ctx, postID, upd)
}

func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	return s.store.Posts().Delete(ctx, postID)
}

// AssertAuthor verifies that userID authored the post.
func (s *PostService) AssertAuthor(ctx context.Context, postID, userID string) error {
	p, err := s.store.Posts().Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.AuthorID != userID {
		return fmt.Errorf("user %s is not the author of post %s: %w", userID, postID, model.ErrNotAllowed)
	}
	return nil
}
