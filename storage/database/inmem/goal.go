package inmemdb

import (
	"context"
	"sort"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
)

type goalRepository struct {
	db *DB
}

var _ goal.Repository = (*goalRepository)(nil)

func NewGoalRepository(db *DB) *goalRepository {
	return &goalRepository{db: db}
}

func (repo *goalRepository) CreateGoal(_ context.Context, g goal.Goal) (goal.Goal, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.goals {
		if existing.UserID == g.UserID && existing.CourseID == g.CourseID {
			return goal.Goal{}, goal.ErrGoalExists
		}
	}
	g.ID = repo.db.nextPK()
	repo.db.goals[g.ID] = &g
	return g, nil
}

func (repo *goalRepository) GetGoalByID(_ context.Context, userID, id string) (goal.Goal, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if g, ok := repo.db.goals[id]; ok && g.UserID == userID {
		return *g, nil
	}
	return goal.Goal{}, goal.ErrNotFound
}

func (repo *goalRepository) QueryGoals(_ context.Context, userID string) ([]goal.Goal, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	goals := make([]goal.Goal, 0)
	for _, g := range repo.db.goals {
		if g.UserID == userID {
			goals = append(goals, *g)
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].ID < goals[j].ID
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

func (repo *goalRepository) UpdateGoal(_ context.Context, g goal.Goal) (goal.Goal, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.goals[g.ID]
	if !ok || orig.UserID != g.UserID {
		return goal.Goal{}, goal.ErrNotFound
	}
	orig.TargetGrade = g.TargetGrade
	return *orig, nil
}

func (repo *goalRepository) DeleteGoal(_ context.Context, userID, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if g, ok := repo.db.goals[id]; !ok || g.UserID != userID {
		return goal.ErrNotFound
	}
	delete(repo.db.goals, id)
	return nil
}
