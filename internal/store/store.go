package store

import (
	"context"
	"time"

	"github.com/kindredhq/kindred/internal/model"
)

// Store exposes persistence operations required by services, one logical
// collection per concept. Implementations live under internal/store/<driver>/
// (e.g., postgres, sqlite).
//
// Get-style reads return model.ErrNotFound (wrapped) when the record is
// absent. Deletes are tolerant of an already-absent record; callers that
// need existence guarantees assert first.
type Store interface {
	Users() Users
	Sessions() Sessions
	Posts() Posts
	Friends() Friends
	Items() Items
	Goals() Goals
	Profiles() Profiles
	Messages() Messages
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Update applies non-nil fields; a nil field retains the stored value.
	Update(ctx context.Context, userID string, username, passwordHash *string) (*model.User, error)
	Delete(ctx context.Context, userID string) error
}

type Sessions interface {
	Create(ctx context.Context, s *model.Session) (*model.Session, error)
	GetByHash(ctx context.Context, tokenHash string) (*model.Session, error)
	DeleteByHash(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteExpired removes sessions whose expiry precedes now and reports
	// how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type Posts interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	Update(ctx context.Context, postID string, upd model.PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, postID string) error
}

type Friends interface {
	CreateRequest(ctx context.Context, r *model.FriendRequest) (*model.FriendRequest, error)
	GetRequest(ctx context.Context, requestID string) (*model.FriendRequest, error)
	ListRequests(ctx context.Context, userID string) ([]*model.FriendRequest, error)
	DeleteRequest(ctx context.Context, requestID string) error
	// AcceptRequest consumes the request and materializes the symmetric
	// edge in one transaction.
	AcceptRequest(ctx context.Context, requestID string) (*model.Friendship, error)
	ListFriends(ctx context.Context, userID string) ([]*model.Friendship, error)
	DeleteFriendship(ctx context.Context, userA, userB string) error
}

type Items interface {
	Create(ctx context.Context, i *model.Item) (*model.Item, error)
	Get(ctx context.Context, itemID string) (*model.Item, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*model.Item, error)
	Update(ctx context.Context, itemID string, upd model.ItemUpdate) (*model.Item, error)
	Delete(ctx context.Context, itemID string) error
}

type Goals interface {
	Create(ctx context.Context, g *model.Goal) (*model.Goal, error)
	Get(ctx context.Context, goalID string) (*model.Goal, error)
	// ListByExecutor filters by status when status is non-empty.
	ListByExecutor(ctx context.Context, executorID, status string) ([]*model.Goal, error)
	Update(ctx context.Context, goalID string, upd model.GoalUpdate) (*model.Goal, error)
	Delete(ctx context.Context, goalID string) error
	// MarkPastDue reclassifies pending goals whose due time precedes now.
	// Each goal is updated independently; an interrupted sweep leaves the
	// remainder pending until the next pass.
	MarkPastDue(ctx context.Context, now time.Time) (int, error)
}

type Profiles interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetByUser(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.Profile, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type Messages interface {
	CreateDraft(ctx context.Context, m *model.Message) (*model.Message, error)
	Get(ctx context.Context, messageID string) (*model.Message, error)
	ListBySender(ctx context.Context, senderID string, state model.MessageState) ([]*model.Message, error)
	ListByRecipient(ctx context.Context, recipientID string, state model.MessageState) ([]*model.Message, error)
	UpdateDraft(ctx context.Context, messageID string, upd model.DraftUpdate) (*model.Message, error)
	// Send flips the draft to "sent" and creates the linked "received" copy
	// in one transaction, returning (sent, received).
	Send(ctx context.Context, messageID string) (*model.Message, *model.Message, error)
	// UpdateSentText mirrors the new text onto both linked copies in one
	// transaction and returns the sender's copy.
	UpdateSentText(ctx context.Context, messageID, text string) (*model.Message, error)
	Delete(ctx context.Context, messageID string) error
	// DeletePair removes the message and its linked copy in one transaction.
	DeletePair(ctx context.Context, messageID string) error
}
