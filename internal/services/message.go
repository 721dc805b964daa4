package services

import (
	"context"
	"fmt"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// MessageService manages the draft -> sent/received message lifecycle. A
// sent message and its received counterpart are cross-linked copies; edits
// and deletes of a sent message cover both.
type MessageService struct {
	store store.Store
}

func NewMessageService(s store.Store) *MessageService { return &MessageService{store: s} }

// Draft creates a draft from senderID to recipientID.
func (s *MessageService) Draft(ctx context.Context, senderID, recipientID, text string, attachment *string) (*model.Message, error) {
	if _, err := s.store.Users().Get(ctx, recipientID); err != nil {
		return nil, err
	}
	return s.store.Messages().CreateDraft(ctx, &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		Attachment:  attachment,
	})
}

// EditDraft applies a partial update to a draft. Only the sender may edit,
// and only while the message is still a draft.
func (s *MessageService) EditDraft(ctx context.Context, messageID, actorID string, upd model.DraftUpdate) (*model.Message, error) {
	m, err := s.assertSender(ctx, messageID, actorID)
	if err != nil {
		return nil, err
	}
	if m.State != model.MessageDraft {
		return nil, fmt.Errorf("message %s is not a draft: %w", messageID, model.ErrNotAllowed)
	}
	if upd.RecipientID != nil {
		if _, err := s.store.Users().Get(ctx, *upd.RecipientID); err != nil {
			return nil, err
		}
	}
	return s.store.Messages().UpdateDraft(ctx, messageID, upd)
}

// Send delivers a draft: the recipient's received copy is created and the
// draft flips to sent, atomically. Returns the sender's copy.
func (s *MessageService) Send(ctx context.Context, messageID, actorID string) (*model.Message, error) {
	if _, err := s.assertSender(ctx, messageID, actorID); err != nil {
		return nil, err
	}
	sent, _, err := s.store.Messages().Send(ctx, messageID)
	return sent, err
}

// EditSent replaces the text of a sent message on both linked copies.
func (s *MessageService) EditSent(ctx context.Context, messageID, actorID, text string) (*model.Message, error) {
	if _, err := s.assertSender(ctx, messageID, actorID); err != nil {
		return nil, err
	}
	return s.store.Messages().UpdateSentText(ctx, messageID, text)
}

// DeleteDraft discards a draft. Only the sender may delete it.
func (s *MessageService) DeleteDraft(ctx context.Context, messageID, actorID string) error {
	m, err := s.assertSender(ctx, messageID, actorID)
	if err != nil {
		return err
	}
	if m.State != model.MessageDraft {
		return fmt.Errorf("message %s is not a draft: %w", messageID, model.ErrNotAllowed)
	}
	return s.store.Messages().Delete(ctx, messageID)
}

// DeleteSent unsends a message: both the sent copy and the linked received
// copy are removed. Only the sender may unsend.
func (s *MessageService) DeleteSent(ctx context.Context, messageID, actorID string) error {
	m, err := s.assertSender(ctx, messageID, actorID)
	if err != nil {
		return err
	}
	if m.State != model.MessageSent {
		return fmt.Errorf("message %s is not a sent message: %w", messageID, model.ErrNotAllowed)
	}
	return s.store.Messages().DeletePair(ctx, messageID)
}

// DeleteReceived removes the recipient's copy only; the sender's record of
// having sent the message stays intact.
func (s *MessageService) DeleteReceived(ctx context.Context, messageID, actorID string) error {
	m, err := s.store.Messages().Get(ctx, messageID)
	if err != nil {
		return err
	}
	if m.RecipientID != actorID {
		return fmt.Errorf("user %s is not the recipient of message %s: %w", actorID, messageID, model.ErrNotAllowed)
	}
	if m.State != model.MessageReceived {
		return fmt.Errorf("message %s is not a received message: %w", messageID, model.ErrNotAllowed)
	}
	return s.store.Messages().Delete(ctx, messageID)
}

func (s *MessageService) ListDrafts(ctx context.Context, senderID string) ([]*model.Message, error) {
	return s.store.Messages().ListBySender(ctx, senderID, model.MessageDraft)
}

func (s *MessageService) ListSent(ctx context.Context, senderID string) ([]*model.Message, error) {
	return s.store.Messages().ListBySender(ctx, senderID, model.MessageSent)
}

func (s *MessageService) ListReceived(ctx context.Context, recipientID string) ([]*model.Message, error) {
	return s.store.Messages().ListByRecipient(ctx, recipientID, model.MessageReceived)
}

func (s *MessageService) assertSender(ctx context.Context, messageID, actorID string) (*model.Message, error) {
	m, err := s.store.Messages().Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.SenderID != actorID {
		return nil, fmt.Errorf("user %s is not the sender of message %s: %w", actorID, messageID, model.ErrNotAllowed)
	}
	return m, nil
}
