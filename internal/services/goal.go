package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// GoalService tracks deadline-bound goals. A goal's status is derived at
// creation from its due time and reclassified by SweepPastDue.
type GoalService struct {
	store store.Store
}

func NewGoalService(s store.Store) *GoalService { return &GoalService{store: s} }

// CreateGoal creates a goal for executorID. A due time already in the past
// yields a goal that starts out past due.
func (s *GoalService) CreateGoal(ctx context.Context, executorID, title, description string, due time.Time) (*model.Goal, error) {
	status := model.GoalPending
	if due.Before(time.Now().UTC()) {
		status = model.GoalPastDue
	}
	return s.store.Goals().Create(ctx, &model.Goal{
		ExecutorID:  executorID,
		Title:       title,
		Description: description,
		Status:      status,
		Due:         due,
	})
}

func (s *GoalService) GetGoal(ctx context.Context, goalID string) (*model.Goal, error) {
	return s.store.Goals().Get(ctx, goalID)
}

// ListGoals returns executorID's goals, filtered by status when non-empty.
func (s *GoalService) ListGoals(ctx context.Context, executorID, status string) ([]*model.Goal, error) {
	if status != "" && !validGoalStatus(status) {
		return nil, fmt.Errorf("unknown goal status %q: %w", status, model.ErrBadValues)
	}
	return s.store.Goals().ListByExecutor(ctx, executorID, status)
}

// UpdateGoal applies a partial update. When the due time moves, past-due is
// recomputed for goals that remain pending.
func (s *GoalService) UpdateGoal(ctx context.Context, goalID string, upd model.GoalUpdate) (*model.Goal, error) {
	if upd.Status != nil && !validGoalStatus(*upd.Status) {
		return nil, fmt.Errorf("unknown goal status %q: %w", *upd.Status, model.ErrBadValues)
	}
	g, err := s.store.Goals().Update(ctx, goalID, upd)
	if err != nil {
		return nil, err
	}
	if upd.Due != nil && g.Status == model.GoalPending && g.Due.Before(time.Now().UTC()) {
		pastDue := model.GoalPastDue
		return s.store.Goals().Update(ctx, goalID, model.GoalUpdate{Status: &pastDue})
	}
	return g, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, goalID string) error {
	return s.store.Goals().Delete(ctx, goalID)
}

// SweepPastDue reclassifies pending goals whose due time has passed and
// reports how many goals were moved.
func (s *GoalService) SweepPastDue(ctx context.Context) (int, error) {
	return s.store.Goals().MarkPastDue(ctx, time.Now().UTC())
}

// AssertExecutor verifies that userID owns the goal.
func (s *GoalService) AssertExecutor(ctx context.Context, goalID, userID string) error {
	g, err := s.store.Goals().Get(ctx, goalID)
	if err != nil {
		return err
	}
	if g.ExecutorID != userID {
		return fmt.Errorf("user %s is not the executor of goal %s: %w", userID, goalID, model.ErrNotAllowed)
	}
	return nil
}

func validGoalStatus(status string) bool {
	switch status {
	case model.GoalPending, model.GoalComplete, model.GoalPastDue:
		return true
	}
	return false
}
