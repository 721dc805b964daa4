package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kindredhq/kindred/internal/api/respond"
	"github.com/kindredhq/kindred/internal/services"
)

type SessionHandler struct {
	users    *services.UserService
	sessions *services.SessionService
}

func NewSessionHandler(users *services.UserService, sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{users: users, sessions: sessions}
}

// Login authenticates username+password and opens a session. The raw token
// appears only in this response. Unauthenticated.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	u, err := h.users.Authenticate(r.Context(), in.Username, in.Password)
	if err != nil {
		// Credential failures are a 401 here, not 403.
		respond.WriteUnauthorized(w, "invalid credentials")
		return
	}
	token, sess, err := h.sessions.Start(r.Context(), u.UserID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, struct {
		Token     string    `json:"token"`
		UserID    string    `json:"userId"`
		ExpiresAt time.Time `json:"expiresAt"`
	}{Token: token, UserID: u.UserID, ExpiresAt: sess.ExpiresAt})
}

// Current returns the session behind the presented token.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	sess, err := h.sessions.Resolve(r.Context(), token)
	if err != nil {
		respond.WriteUnauthorized(w, "invalid or expired session")
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// Logout ends the presented session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	if err := h.sessions.End(r.Context(), token); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
