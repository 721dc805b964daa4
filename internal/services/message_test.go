package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredhq/kindred/internal/model"
)

func TestMessageDraftSendLifecycle(t *testing.T) {
	s := newTestStore(t)
	svc := NewMessageService(s)
	ctx := context.Background()
	sender := seedUser(t, s, "msg-sender")
	recipient := seedUser(t, s, "msg-recipient")

	d, err := svc.Draft(ctx, sender.UserID, recipient.UserID, "hey", nil)
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}

	text := "hey, revised"
	if got, err := svc.EditDraft(ctx, d.MessageID, sender.UserID, model.DraftUpdate{Text: &text}); err != nil || got.Text != text {
		t.Fatalf("EditDraft: got=%v err=%v", got, err)
	}
	// Only the sender may edit.
	if _, err := svc.EditDraft(ctx, d.MessageID, recipient.UserID, model.DraftUpdate{Text: &text}); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("recipient edit: want ErrNotAllowed, got %v", err)
	}

	sent, err := svc.Send(ctx, d.MessageID, sender.UserID)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent.State != model.MessageSent || sent.PairID == nil {
		t.Fatalf("sent copy: %+v", sent)
	}

	inbox, err := svc.ListReceived(ctx, recipient.UserID)
	if err != nil || len(inbox) != 1 {
		t.Fatalf("ListReceived: n=%d err=%v", len(inbox), err)
	}
	if inbox[0].Text != text || inbox[0].MessageID != *sent.PairID {
		t.Fatalf("received copy mismatch: %+v", inbox[0])
	}

	// A sent message is no longer a draft.
	if _, err := svc.EditDraft(ctx, d.MessageID, sender.UserID, model.DraftUpdate{Text: &text}); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("edit sent as draft: want ErrNotAllowed, got %v", err)
	}
	if _, err := svc.Send(ctx, d.MessageID, sender.UserID); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("double send: want ErrNotAllowed, got %v", err)
	}
}

func TestMessageEditSentMirrorsBothCopies(t *testing.T) {
	s := newTestStore(t)
	svc := NewMessageService(s)
	ctx := context.Background()
	sender := seedUser(t, s, "edit-sender")
	recipient := seedUser(t, s, "edit-recipient")

	d, err := svc.Draft(ctx, sender.UserID, recipient.UserID, "original", nil)
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	sent, err := svc.Send(ctx, d.MessageID, sender.UserID)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if _, err := svc.EditSent(ctx, sent.MessageID, sender.UserID, "corrected"); err != nil {
		t.Fatalf("EditSent: %v", err)
	}
	inbox, err := svc.ListReceived(ctx, recipient.UserID)
	if err != nil || len(inbox) != 1 || inbox[0].Text != "corrected" {
		t.Fatalf("received copy after edit: %+v err=%v", inbox, err)
	}
	// The recipient cannot edit either copy.
	if _, err := svc.EditSent(ctx, sent.MessageID, recipient.UserID, "nope"); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("recipient EditSent: want ErrNotAllowed, got %v", err)
	}
}

func TestMessageDeleteSentRemovesBothCopies(t *testing.T) {
	s := newTestStore(t)
	svc := NewMessageService(s)
	ctx := context.Background()
	sender := seedUser(t, s, "del-sender")
	recipient := seedUser(t, s, "del-recipient")

	d, err := svc.Draft(ctx, sender.UserID, recipient.UserID, "going away", nil)
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	sent, err := svc.Send(ctx, d.MessageID, sender.UserID)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if err := svc.DeleteSent(ctx, sent.MessageID, recipient.UserID); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("recipient unsend: want ErrNotAllowed, got %v", err)
	}
	if err := svc.DeleteSent(ctx, sent.MessageID, sender.UserID); err != nil {
		t.Fatalf("DeleteSent: %v", err)
	}
	if inbox, err := svc.ListReceived(ctx, recipient.UserID); err != nil || len(inbox) != 0 {
		t.Fatalf("inbox after unsend: n=%d err=%v", len(inbox), err)
	}
}

func TestMessageDeleteReceivedKeepsSenderCopy(t *testing.T) {
	s := newTestStore(t)
	svc := NewMessageService(s)
	ctx := context.Background()
	sender := seedUser(t, s, "keep-sender")
	recipient := seedUser(t, s, "keep-recipient")

	d, err := svc.Draft(ctx, sender.UserID, recipient.UserID, "keep me", nil)
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	sent, err := svc.Send(ctx, d.MessageID, sender.UserID)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if err := svc.DeleteReceived(ctx, *sent.PairID, recipient.UserID); err != nil {
		t.Fatalf("DeleteReceived: %v", err)
	}
	if outbox, err := svc.ListSent(ctx, sender.UserID); err != nil || len(outbox) != 1 {
		t.Fatalf("sender copy should survive: n=%d err=%v", len(outbox), err)
	}
}

func TestMessageDraftRequiresKnownRecipient(t *testing.T) {
	s := newTestStore(t)
	svc := NewMessageService(s)
	ctx := context.Background()
	sender := seedUser(t, s, "lonely-sender")

	if _, err := svc.Draft(ctx, sender.UserID, "no-such-user", "hello?", nil); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("unknown recipient: want ErrNotFound, got %v", err)
	}
}
