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

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// CreateProfile creates the actor's profile.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		Name    string  `json:"name"`
		Contact *string `json:"contact,omitempty"`
		Bio     *string `json:"bio,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreateProfile(in.Name, in.Contact, in.Bio); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p, err := h.profiles.CreateProfile(r.Context(), actorID, in.Name, in.Contact, in.Bio)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, p)
}

// GetProfile returns any user's profile by user id.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.GetProfile(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// UpdateProfile patches the actor's own profile.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Name != nil && *in.Name == "" {
		respond.WriteBadRequest(w, "name must not be empty")
		return
	}
	if err := validate.MaxLen("contact", in.Contact, 200); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.MaxLen("bio", in.Bio, 1000); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p, err := h.profiles.UpdateProfile(r.Context(), actorID, in)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// DeleteProfile removes the actor's own profile.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.profiles.DeleteProfile(r.Context(), actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
