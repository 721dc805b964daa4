package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredhq/kindred/internal/model"
)

func TestPostCRUD(t *testing.T) {
	s := newTestStore(t)
	svc := NewPostService(s)
	ctx := context.Background()
	u := seedUser(t, s, "post-user")

	opts := `{"pinned":true}`
	p, err := svc.CreatePost(ctx, u.UserID, "first post", &opts)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	// An empty update is a no-op apart from the update time.
	before, err := svc.GetPost(ctx, p.PostID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	after, err := svc.UpdatePost(ctx, p.PostID, model.PostUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if after.Content != before.Content || after.Options == nil || *after.Options != *before.Options {
		t.Fatalf("empty update changed fields: before=%+v after=%+v", before, after)
	}

	content := "first post, edited"
	if got, err := svc.UpdatePost(ctx, p.PostID, model.PostUpdate{Content: &content}); err != nil || got.Content != content {
		t.Fatalf("UpdatePost: got=%v err=%v", got, err)
	}
	if err := svc.DeletePost(ctx, p.PostID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := svc.GetPost(ctx, p.PostID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("deleted post: want ErrNotFound, got %v", err)
	}
}

func TestPostAssertAuthor(t *testing.T) {
	s := newTestStore(t)
	svc := NewPostService(s)
	ctx := context.Background()
	author := seedUser(t, s, "author")
	other := seedUser(t, s, "reader")

	p, err := svc.CreatePost(ctx, author.UserID, "mine", nil)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := svc.AssertAuthor(ctx, p.PostID, author.UserID); err != nil {
		t.Fatalf("author assert: %v", err)
	}
	if err := svc.AssertAuthor(ctx, p.PostID, other.UserID); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("stranger assert: want ErrNotAllowed, got %v", err)
	}
	if err := svc.AssertAuthor(ctx, "missing-post", author.UserID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing post assert: want ErrNotFound, got %v", err)
	}
}
