package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
)

// uniqueViolation is the Postgres error code raised on UNIQUE constraint conflicts.
const uniqueViolation = "23505"

type goalRepository struct {
	db *sqlx.DB
}

var _ goal.Repository = (*goalRepository)(nil)

func NewGoalRepository(db *sqlx.DB) *goalRepository {
	return &goalRepository{db: db}
}

type goalRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	CourseID    string    `db:"course_id"`
	TargetGrade float64   `db:"target_grade"`
	CreatedAt   time.Time `db:"created_at"`
}

func newGoalRow(g goal.Goal) goalRow {
	return goalRow{
		ID:          g.ID,
		UserID:      g.UserID,
		CourseID:    g.CourseID,
		TargetGrade: g.TargetGrade,
		CreatedAt:   g.CreatedAt,
	}
}

func (r goalRow) toGoal() goal.Goal {
	return goal.Goal{
		ID:          r.ID,
		UserID:      r.UserID,
		CourseID:    r.CourseID,
		TargetGrade: r.TargetGrade,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func (repo *goalRepository) CreateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	g.ID = uuid.NewString()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO goals (id, user_id, course_id, target_grade, created_at)
		VALUES (:id, :user_id, :course_id, :target_grade, :created_at)`,
		newGoalRow(g),
	)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return goal.Goal{}, goal.ErrGoalExists
		}
		return goal.Goal{}, errors.Wrap(err, "inserting goal")
	}
	return g, nil
}

func (repo *goalRepository) GetGoalByID(ctx context.Context, userID, id string) (goal.Goal, error) {
	var row goalRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return goal.Goal{}, goal.ErrNotFound
		}
		return goal.Goal{}, errors.Wrap(err, "getting goal")
	}
	return row.toGoal(), nil
}

func (repo *goalRepository) QueryGoals(ctx context.Context, userID string) ([]goal.Goal, error) {
	var rows []goalRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying goals")
	}
	goals := make([]goal.Goal, 0, len(rows))
	for _, r := range rows {
		goals = append(goals, r.toGoal())
	}
	return goals, nil
}

func (repo *goalRepository) UpdateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE goals SET target_grade = :target_grade WHERE user_id = :user_id AND id = :id`,
		newGoalRow(g),
	)
	if err != nil {
		return goal.Goal{}, errors.Wrap(err, "updating goal")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return goal.Goal{}, goal.ErrNotFound
	}
	return g, nil
}

func (repo *goalRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.Wrap(err, "deleting goal")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return goal.ErrNotFound
	}
	return nil
}
