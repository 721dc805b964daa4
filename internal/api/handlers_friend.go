package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindredhq/kindred/internal/api/respond"
	"github.com/kindredhq/kindred/internal/services"
)

type FriendHandler struct {
	friends *services.FriendService
}

func NewFriendHandler(friends *services.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.friends.ListFriends(r.Context(), actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

// RemoveFriend dissolves the edge between the actor and {userId}.
func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.friends.RemoveFriend(r.Context(), actorID, mux.Vars(r)["userId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		ToUserID string `json:"toUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.ToUserID == "" {
		respond.WriteBadRequest(w, "toUserId is required")
		return
	}
	req, err := h.friends.SendRequest(r.Context(), actorID, in.ToUserID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, req)
}

func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.friends.ListRequests(r.Context(), actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	fs, err := h.friends.AcceptRequest(r.Context(), mux.Vars(r)["requestId"], actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, fs)
}

func (h *FriendHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.friends.RejectRequest(r.Context(), mux.Vars(r)["requestId"], actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelRequest withdraws the actor's own pending request.
func (h *FriendHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.friends.CancelRequest(r.Context(), mux.Vars(r)["requestId"], actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
