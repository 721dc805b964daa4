package model

import "time"

// User is an identity: who someone is and the credential that proves it.
type User struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// Session is an active login. TokenHash is the SHA-256 of the bearer token
// handed to the client; the raw token is never stored.
type Session struct {
	SessionID    string    `json:"sessionId"`
	UserID       string    `json:"userId"`
	TokenHash    string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreationTime time.Time `json:"creationTime"`
}

// Post is authored content. AuthorID is immutable after creation.
type Post struct {
	PostID       string    `json:"postId"`
	AuthorID     string    `json:"authorId"`
	Content      string    `json:"content"`
	Options      *string   `json:"options,omitempty"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// PostUpdate carries optional fields for a partial post update.
// A nil field retains the stored value.
type PostUpdate struct {
	Content *string `json:"content,omitempty"`
	Options *string `json:"options,omitempty"`
}

// FriendRequest is a directional, still-pending request from one user to
// another. Accepting it materializes a Friendship; rejecting discards it.
type FriendRequest struct {
	RequestID    string    `json:"requestId"`
	FromID       string    `json:"fromId"`
	ToID         string    `json:"toId"`
	CreationTime time.Time `json:"creationTime"`
}

// Friendship is the symmetric edge produced by an accepted request.
type Friendship struct {
	FriendshipID string    `json:"friendshipId"`
	UserA        string    `json:"userA"`
	UserB        string    `json:"userB"`
	CreationTime time.Time `json:"creationTime"`
}

// Item statuses.
const (
	ItemInProgress = "in-progress"
	ItemComplete   = "complete"
)

// Item is a creator-owned tracked piece of work.
type Item struct {
	ItemID       string    `json:"itemId"`
	CreatorID    string    `json:"creatorId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// ItemUpdate carries optional fields for a partial item update.
type ItemUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Goal statuses. "past due" is derived, never supplied by clients: a
// pending goal whose due time has passed is reclassified at create time or
// by an explicit sweep.
const (
	GoalPending  = "pending"
	GoalComplete = "complete"
	GoalPastDue  = "past due"
)

// Goal is an executor-owned objective with a due time.
type Goal struct {
	GoalID       string    `json:"goalId"`
	ExecutorID   string    `json:"executorId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Due          time.Time `json:"due"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// GoalUpdate carries optional fields for a partial goal update.
type GoalUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Due         *time.Time `json:"due,omitempty"`
}

// Profile holds display information for a user. At most one per user.
type Profile struct {
	ProfileID    string    `json:"profileId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Contact      *string   `json:"contact,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// ProfileUpdate carries optional fields for a partial profile update.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Bio     *string `json:"bio,omitempty"`
}

// MessageState is the lifecycle state of a message. A message is in exactly
// one state; the enum replaces nullable boolean flags so that illegal
// combinations are unrepresentable.
type MessageState string

const (
	MessageDraft    MessageState = "draft"
	MessageSent     MessageState = "sent"
	MessageReceived MessageState = "received"
)

// Message is a sender-to-recipient message. A sent message exists as two
// stored copies: the sender's record in state "sent" and the recipient's in
// state "received", cross-linked through PairID.
type Message struct {
	MessageID    string       `json:"messageId"`
	SenderID     string       `json:"senderId"`
	RecipientID  string       `json:"recipientId"`
	Text         string       `json:"text"`
	Attachment   *string      `json:"attachment,omitempty"`
	State        MessageState `json:"state"`
	PairID       *string      `json:"pairId,omitempty"`
	DraftedAt    *time.Time   `json:"draftedAt,omitempty"`
	SentAt       *time.Time   `json:"sentAt,omitempty"`
	ReceivedAt   *time.Time   `json:"receivedAt,omitempty"`
	CreationTime time.Time    `json:"creationTime"`
	UpdateTime   time.Time    `json:"updateTime"`
}

// DraftUpdate carries optional fields for editing a draft.
type DraftUpdate struct {
	RecipientID *string `json:"recipientId,omitempty"`
	Text        *string `json:"text,omitempty"`
	Attachment  *string `json:"attachment,omitempty"`
}

// Preference is declared for forward compatibility; no collection backs it
// and every operation on it is a no-op.
type Preference struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
}
