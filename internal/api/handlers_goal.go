package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kindredhq/kindred/internal/api/respond"
	"github.com/kindredhq/kindred/internal/api/validate"
	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/services"
)

type GoalHandler struct {
	goals *services.GoalService
}

func NewGoalHandler(goals *services.GoalService) *GoalHandler { return &GoalHandler{goals: goals} }

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	var in struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Due         time.Time `json:"due"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreateGoal(in.Title, in.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if in.Due.IsZero() {
		respond.WriteBadRequest(w, "due is required")
		return
	}
	g, err := h.goals.CreateGoal(r.Context(), actorID, in.Title, in.Description, in.Due)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, g)
}

// ListGoals returns the actor's goals, optionally filtered by ?status=.
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	actorID, _ := UserIDFromContext(r.Context())
	lst, err := h.goals.ListGoals(r.Context(), actorID, r.URL.Query().Get("status"))
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, lst)
}

func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := h.goals.GetGoal(r.Context(), mux.Vars(r)["goalId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID := mux.Vars(r)["goalId"]
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.goals.AssertExecutor(r.Context(), goalID, actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	var in model.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Title != nil && *in.Title == "" {
		respond.WriteBadRequest(w, "title must not be empty")
		return
	}
	g, err := h.goals.UpdateGoal(r.Context(), goalID, in)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := mux.Vars(r)["goalId"]
	actorID, _ := UserIDFromContext(r.Context())
	if err := h.goals.AssertExecutor(r.Context(), goalID, actorID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if err := h.goals.DeleteGoal(r.Context(), goalID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SweepPastDue reclassifies pending goals across all users whose due time
// has passed.
func (h *GoalHandler) SweepPastDue(w http.ResponseWriter, r *http.Request) {
	n, err := h.goals.SweepPastDue(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, struct {
		SweptCount int `json:"sweptCount"`
	}{SweptCount: n})
}
