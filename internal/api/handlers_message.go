package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindredhq/kindred/internal/api/respond"
	"github.com/kindredhq/kindred/internal/api/validate"
	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/services"
)

type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		RecipientID string  `json:"recipientId"`
		Text        string  `json:"text"`
		Attachment  *string `json:"attachment,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.DraftMessage(in.RecipientID, in.Text, in.Attachment); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	m, err := h.messages.Draft(r.Context(), actorID, in.RecipientID, in.Text, in.Attachment)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

func (h *MessageHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.messages.ListDrafts(r.Context(), actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *MessageHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.messages.ListSent(r.Context(), actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *MessageHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.messages.ListReceived(r.Context(), actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *MessageHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in model.DraftUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Text != nil && *in.Text == "" {
		respond.WriteBadRequest(w, "text must not be empty")
		return
	}
	if in.RecipientID != nil && *in.RecipientID == "" {
		respond.WriteBadRequest(w, "recipientId must not be empty")
		return
	}
	if err := validate.MaxLen("attachment", in.Attachment, 2000); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	m, err := h.messages.EditDraft(r.Context(), mux.Vars(r)["messageId"], actorID, in)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// SendDraft delivers a draft; the response carries the sender's sent copy.
func (h *MessageHandler) SendDraft(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	m, err := h.messages.Send(r.Context(), mux.Vars(r)["messageId"], actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *MessageHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.messages.DeleteDraft(r.Context(), mux.Vars(r)["messageId"], actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSent replaces the text on both linked copies.
func (h *MessageHandler) UpdateSent(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Text == "" {
		respond.WriteBadRequest(w, "text is required")
		return
	}
	m, err := h.messages.EditSent(r.Context(), mux.Vars(r)["messageId"], actorID, in.Text)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// DeleteSent unsends a message, removing both linked copies.
func (h *MessageHandler) DeleteSent(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.messages.DeleteSent(r.Context(), mux.Vars(r)["messageId"], actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteReceived removes the actor's received copy only.
func (h *MessageHandler) DeleteReceived(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.messages.DeleteReceived(r.Context(), mux.Vars(r)["messageId"], actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
