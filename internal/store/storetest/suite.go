package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from
// makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Two users for the relationship-heavy collections.
	alice := mustCreateUser(t, s, "alice-"+uuid.New().String())
	bob := mustCreateUser(t, s, "bob-"+uuid.New().String())

	// Users
	if got, err := s.Users().Get(ctx, alice.UserID); err != nil || got == nil || got.Username != alice.Username {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByUsername(ctx, alice.Username); err != nil || got == nil || got.UserID != alice.UserID {
		t.Fatalf("GetUserByUsername: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "missing-"+uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}
	newName := "alice2-" + uuid.New().String()
	if got, err := s.Users().Update(ctx, alice.UserID, &newName, nil); err != nil || got.Username != newName {
		t.Fatalf("UpdateUser: got=%v err=%v", got, err)
	}
	// A nil field retains the stored value.
	if got, err := s.Users().Update(ctx, alice.UserID, nil, nil); err != nil || got.Username != newName {
		t.Fatalf("UpdateUser no-op: got=%v err=%v", got, err)
	}

	// Sessions
	sess, err := s.Sessions().Create(ctx, &model.Session{
		UserID:    alice.UserID,
		TokenHash: "hash-" + uuid.New().String(),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if got, err := s.Sessions().GetByHash(ctx, sess.TokenHash); err != nil || got.UserID != alice.UserID {
		t.Fatalf("GetSessionByHash: got=%v err=%v", got, err)
	}
	expired, err := s.Sessions().Create(ctx, &model.Session{
		UserID:    alice.UserID,
		TokenHash: "hash-" + uuid.New().String(),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateSession expired: %v", err)
	}
	if n, err := s.Sessions().DeleteExpired(ctx, time.Now().UTC()); err != nil || n < 1 {
		t.Fatalf("DeleteExpired: n=%d err=%v", n, err)
	}
	if _, err := s.Sessions().GetByHash(ctx, expired.TokenHash); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expired session should be gone, got %v", err)
	}
	if err := s.Sessions().DeleteByHash(ctx, sess.TokenHash); err != nil {
		t.Fatalf("DeleteSessionByHash: %v", err)
	}

	// Posts
	opts := `{"visibility":"friends"}`
	p, err := s.Posts().Create(ctx, &model.Post{AuthorID: alice.UserID, Content: "hello", Options: &opts})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if got, err := s.Posts().Get(ctx, p.PostID); err != nil || got.Content != "hello" || got.Options == nil {
		t.Fatalf("GetPost: got=%v err=%v", got, err)
	}
	if lst, err := s.Posts().ListByAuthor(ctx, alice.UserID); err != nil || len(lst) != 1 {
		t.Fatalf("ListPostsByAuthor: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Posts().List(ctx); err != nil || len(lst) < 1 {
		t.Fatalf("ListPosts: n=%d err=%v", len(lst), err)
	}
	newContent := "hello, edited"
	if got, err := s.Posts().Update(ctx, p.PostID, model.PostUpdate{Content: &newContent}); err != nil || got.Content != newContent || got.Options == nil {
		t.Fatalf("UpdatePost: got=%v err=%v", got, err)
	}
	if _, err := s.Posts().Update(ctx, "missing-"+uuid.New().String(), model.PostUpdate{Content: &newContent}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdatePost missing: want ErrNotFound, got %v", err)
	}
	if err := s.Posts().Delete(ctx, p.PostID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	// Friends: request -> accept produces a symmetric edge and consumes the request.
	req, err := s.Friends().CreateRequest(ctx, &model.FriendRequest{FromID: alice.UserID, ToID: bob.UserID})
	if err != nil {
		t.Fatalf("CreateFriendRequest: %v", err)
	}
	if lst, err := s.Friends().ListRequests(ctx, bob.UserID); err != nil || len(lst) != 1 {
		t.Fatalf("ListFriendRequests: n=%d err=%v", len(lst), err)
	}
	fs, err := s.Friends().AcceptRequest(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("AcceptFriendRequest: %v", err)
	}
	if fs.UserA != alice.UserID || fs.UserB != bob.UserID {
		t.Fatalf("AcceptFriendRequest edge: %+v", fs)
	}
	if _, err := s.Friends().GetRequest(ctx, req.RequestID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("accepted request should be consumed, got %v", err)
	}
	for _, uid := range []string{alice.UserID, bob.UserID} {
		if lst, err := s.Friends().ListFriends(ctx, uid); err != nil || len(lst) != 1 {
			t.Fatalf("ListFriends(%s): n=%d err=%v", uid, len(lst), err)
		}
	}
	// Rejected requests are simply discarded.
	req2, err := s.Friends().CreateRequest(ctx, &model.FriendRequest{FromID: bob.UserID, ToID: alice.UserID})
	if err != nil {
		t.Fatalf("CreateFriendRequest 2: %v", err)
	}
	if err := s.Friends().DeleteRequest(ctx, req2.RequestID); err != nil {
		t.Fatalf("DeleteFriendRequest: %v", err)
	}
	// Unfriend works from either side.
	if err := s.Friends().DeleteFriendship(ctx, bob.UserID, alice.UserID); err != nil {
		t.Fatalf("DeleteFriendship: %v", err)
	}
	if lst, err := s.Friends().ListFriends(ctx, alice.UserID); err != nil || len(lst) != 0 {
		t.Fatalf("ListFriends after unfriend: n=%d err=%v", len(lst), err)
	}

	// Items
	it, err := s.Items().Create(ctx, &model.Item{CreatorID: alice.UserID, Title: "laundry", Description: "fold it", Status: model.ItemInProgress})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	done := model.ItemComplete
	if got, err := s.Items().Update(ctx, it.ItemID, model.ItemUpdate{Status: &done}); err != nil || got.Status != model.ItemComplete || got.Title != "laundry" {
		t.Fatalf("UpdateItem: got=%v err=%v", got, err)
	}
	if lst, err := s.Items().ListByCreator(ctx, alice.UserID); err != nil || len(lst) != 1 {
		t.Fatalf("ListItemsByCreator: n=%d err=%v", len(lst), err)
	}
	if err := s.Items().Delete(ctx, it.ItemID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	// Goals: the sweep reclassifies pending goals past their due time.
	past, err := s.Goals().Create(ctx, &model.Goal{
		ExecutorID: alice.UserID, Title: "overdue", Description: "d",
		Status: model.GoalPending, Due: time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateGoal past: %v", err)
	}
	future, err := s.Goals().Create(ctx, &model.Goal{
		ExecutorID: alice.UserID, Title: "future", Description: "d",
		Status: model.GoalPending, Due: time.Now().UTC().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateGoal future: %v", err)
	}
	if n, err := s.Goals().MarkPastDue(ctx, time.Now().UTC()); err != nil || n != 1 {
		t.Fatalf("MarkPastDue: n=%d err=%v", n, err)
	}
	if got, err := s.Goals().Get(ctx, past.GoalID); err != nil || got.Status != model.GoalPastDue {
		t.Fatalf("swept goal: got=%v err=%v", got, err)
	}
	if got, err := s.Goals().Get(ctx, future.GoalID); err != nil || got.Status != model.GoalPending {
		t.Fatalf("future goal untouched: got=%v err=%v", got, err)
	}
	// A second sweep finds nothing.
	if n, err := s.Goals().MarkPastDue(ctx, time.Now().UTC()); err != nil || n != 0 {
		t.Fatalf("MarkPastDue idempotent: n=%d err=%v", n, err)
	}
	if lst, err := s.Goals().ListByExecutor(ctx, alice.UserID, model.GoalPending); err != nil || len(lst) != 1 {
		t.Fatalf("ListGoals status filter: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Goals().ListByExecutor(ctx, alice.UserID, ""); err != nil || len(lst) != 2 {
		t.Fatalf("ListGoals all: n=%d err=%v", len(lst), err)
	}
	completed := model.GoalComplete
	if got, err := s.Goals().Update(ctx, future.GoalID, model.GoalUpdate{Status: &completed}); err != nil || got.Status != model.GoalComplete {
		t.Fatalf("UpdateGoal: got=%v err=%v", got, err)
	}
	if err := s.Goals().Delete(ctx, past.GoalID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}

	// Profiles: one per user.
	bio := "hi there"
	prof, err := s.Profiles().Create(ctx, &model.Profile{UserID: alice.UserID, Name: "Alice", Bio: &bio})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if got, err := s.Profiles().GetByUser(ctx, alice.UserID); err != nil || got.ProfileID != prof.ProfileID || got.Bio == nil {
		t.Fatalf("GetProfileByUser: got=%v err=%v", got, err)
	}
	contact := "alice@example.test"
	if got, err := s.Profiles().Update(ctx, alice.UserID, model.ProfileUpdate{Contact: &contact}); err != nil || got.Contact == nil || *got.Contact != contact || got.Name != "Alice" {
		t.Fatalf("UpdateProfile: got=%v err=%v", got, err)
	}
	if err := s.Profiles().DeleteByUser(ctx, alice.UserID); err != nil {
		t.Fatalf("DeleteProfileByUser: %v", err)
	}
	if _, err := s.Profiles().GetByUser(ctx, alice.UserID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("deleted profile: want ErrNotFound, got %v", err)
	}

	runMessages(t, s, alice.UserID, bob.UserID)
}

// runMessages covers the draft -> sent/received lifecycle, including the
// cross-linked pair semantics.
func runMessages(t *testing.T, s store.Store, sender, recipient string) {
	t.Helper()
	ctx := context.Background()

	d, err := s.Messages().CreateDraft(ctx, &model.Message{SenderID: sender, RecipientID: recipient, Text: "draft one"})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if d.State != model.MessageDraft || d.DraftedAt == nil {
		t.Fatalf("draft state: %+v", d)
	}
	if lst, err := s.Messages().ListBySender(ctx, sender, model.MessageDraft); err != nil || len(lst) != 1 {
		t.Fatalf("ListBySender drafts: n=%d err=%v", len(lst), err)
	}

	newText := "draft one, revised"
	if got, err := s.Messages().UpdateDraft(ctx, d.MessageID, model.DraftUpdate{Text: &newText}); err != nil || got.Text != newText {
		t.Fatalf("UpdateDraft: got=%v err=%v", got, err)
	}

	sent, received, err := s.Messages().Send(ctx, d.MessageID)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent.State != model.MessageSent || sent.PairID == nil || *sent.PairID != received.MessageID {
		t.Fatalf("sent copy: %+v", sent)
	}
	if received.State != model.MessageReceived || received.PairID == nil || *received.PairID != sent.MessageID {
		t.Fatalf("received copy: %+v", received)
	}
	if sent.DraftedAt != nil || sent.SentAt == nil || received.ReceivedAt == nil {
		t.Fatalf("timestamps: sent=%+v received=%+v", sent, received)
	}
	// Sending twice is rejected.
	if _, _, err := s.Messages().Send(ctx, d.MessageID); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("double send: want ErrNotAllowed, got %v", err)
	}

	if lst, err := s.Messages().ListBySender(ctx, sender, model.MessageSent); err != nil || len(lst) != 1 {
		t.Fatalf("ListBySender sent: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Messages().ListByRecipient(ctx, recipient, model.MessageReceived); err != nil || len(lst) != 1 {
		t.Fatalf("ListByRecipient received: n=%d err=%v", len(lst), err)
	}

	// Editing a sent message mirrors the text onto the received copy.
	edited := "edited after send"
	if _, err := s.Messages().UpdateSentText(ctx, sent.MessageID, edited); err != nil {
		t.Fatalf("UpdateSentText: %v", err)
	}
	if got, err := s.Messages().Get(ctx, received.MessageID); err != nil || got.Text != edited {
		t.Fatalf("received copy after edit: got=%v err=%v", got, err)
	}
	// Only sent copies can be edited this way.
	if _, err := s.Messages().UpdateSentText(ctx, received.MessageID, "nope"); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("edit received copy: want ErrNotAllowed, got %v", err)
	}

	// Unsending removes both copies.
	if err := s.Messages().DeletePair(ctx, sent.MessageID); err != nil {
		t.Fatalf("DeletePair: %v", err)
	}
	for _, id := range []string{sent.MessageID, received.MessageID} {
		if _, err := s.Messages().Get(ctx, id); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("copy %s should be gone, got %v", id, err)
		}
	}
	// Deleting an already-deleted pair is a no-op.
	if err := s.Messages().DeletePair(ctx, sent.MessageID); err != nil {
		t.Fatalf("DeletePair again: %v", err)
	}

	// A plain delete of a draft removes just that record.
	d2, err := s.Messages().CreateDraft(ctx, &model.Message{SenderID: sender, RecipientID: recipient, Text: "scratch"})
	if err != nil {
		t.Fatalf("CreateDraft 2: %v", err)
	}
	if err := s.Messages().Delete(ctx, d2.MessageID); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
}

func mustCreateUser(t *testing.T, s store.Store, username string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{Username: username, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}
