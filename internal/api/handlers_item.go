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

type ItemHandler struct {
	items *services.ItemService
}

func NewItemHandler(items *services.ItemService) *ItemHandler { return &ItemHandler{items: items} }

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreateItem(in.Title, in.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	it, err := h.items.CreateItem(r.Context(), actorID, in.Title, in.Description, in.Status)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, it)
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.items.ListItems(r.Context(), actorID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.items.GetItem(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.items.AssertCreator(r.Context(), itemID, actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in model.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Title != nil && *in.Title == "" {
		respond.WriteBadRequest(w, "title must not be empty")
		return
	}
	it, err := h.items.UpdateItem(r.Context(), itemID, in)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.items.AssertCreator(r.Context(), itemID, actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if err := h.items.DeleteItem(r.Context(), itemID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
