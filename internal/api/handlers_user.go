package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kindredhq/kindred/internal/api/respond"
	"github.com/kindredhq/kindred/internal/api/validate"
	"github.com/kindredhq/kindred/internal/services"
)

type UserHandler struct {
	users    *services.UserService
	sessions *services.SessionService
}

func NewUserHandler(users *services.UserService, sessions *services.SessionService) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// Register creates an account. Unauthenticated.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.Register(in.Username, in.Password); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	u, err := h.users.Register(r.Context(), in.Username, in.Password)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// LookupUser resolves ?username= to a user record.
func (h *UserHandler) LookupUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respond.WriteBadRequest(w, "username query parameter is required")
		return
	}
	u, err := h.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// UpdateUser changes the username and/or password. Users may only update
// themselves.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	actorID, _ := UserIDFromContext(r.Context())
	if actorID != userID {
		respond.WriteError(w, http.StatusForbidden, "cannot update another user")
		return
	}

	var in struct {
		Username *string `json:"username,omitempty"`
		Password *string `json:"password,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Username != nil {
		if err := validate.Username(*in.Username); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}
	if in.Password != nil {
		if err := validate.Password(*in.Password); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if in.Username != nil {
		if u, err = h.users.UpdateUsername(r.Context(), userID, *in.Username); err != nil {
			respond.WriteServiceError(w, err)
			return
		}
	}
	if in.Password != nil {
		if u, err = h.users.UpdatePassword(r.Context(), userID, *in.Password); err != nil {
			respond.WriteServiceError(w, err)
			return
		}
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// DeleteUser removes the account. Users may only delete themselves.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	actorID, _ := UserIDFromContext(r.Context())
	if actorID != userID {
		respond.WriteError(w, http.StatusForbidden, "cannot delete another user")
		return
	}
	if err := h.users.DeleteUser(r.Context(), userID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
