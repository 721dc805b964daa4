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

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler { return &PostHandler{posts: posts} }

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		Content string  `json:"content"`
		Options *string `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreatePost(in.Content, in.Options); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p, err := h.posts.CreatePost(r.Context(), actorID, in.Content, in.Options)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	lst, err := h.posts.ListPosts(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *PostHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	lst, err := h.posts.ListPostsByAuthor(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.posts.GetPost(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.posts.AssertAuthor(r.Context(), postID, actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in model.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Content != nil && *in.Content == "" {
		respond.WriteBadRequest(w, "content must not be empty")
		return
	}
	if err := validate.MaxLen("options", in.Options, 2000); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p, err := h.posts.UpdatePost(r.Context(), postID, in)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.posts.AssertAuthor(r.Context(), postID, actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if err := h.posts.DeletePost(r.Context(), postID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
