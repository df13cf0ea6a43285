package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
)

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

type eventRow struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	CourseID    string       `db:"course_id"`
	Title       string       `db:"title"`
	Type        string       `db:"type"`
	Description null.String  `db:"description"`
	Weight      float64      `db:"weight"`
	Grade       null.Float64 `db:"grade"`
	IsCompleted bool         `db:"is_completed"`
	DueAt       time.Time    `db:"due_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func newEventRow(ev event.Event) eventRow {
	return eventRow{
		ID:          ev.ID,
		UserID:      ev.UserID,
		CourseID:    ev.CourseID,
		Title:       ev.Title,
		Type:        ev.Type,
		Description: ev.Description,
		Weight:      ev.Weight,
		Grade:       ev.Grade,
		IsCompleted: ev.IsCompleted,
		DueAt:       ev.DueAt,
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func (r eventRow) toEvent() event.Event {
	return event.Event{
		ID:          r.ID,
		UserID:      r.UserID,
		CourseID:    r.CourseID,
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		Weight:      r.Weight,
		Grade:       r.Grade,
		IsCompleted: r.IsCompleted,
		DueAt:       r.DueAt.UTC(),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	ev.ID = uuid.NewString()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO events (id, user_id, course_id, title, type, description, weight, grade,
		                    is_completed, due_at, created_at, updated_at)
		VALUES (:id, :user_id, :course_id, :title, :type, :description, :weight, :grade,
		        :is_completed, :due_at, :created_at, :updated_at)`,
		newEventRow(ev),
	)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return ev, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, userID, id string) (event.Event, error) {
	var row eventRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting event")
	}
	return row.toEvent(), nil
}

func (repo *eventRepository) selectEvents(ctx context.Context, query string, args ...interface{}) ([]event.Event, error) {
	var rows []eventRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	events := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toEvent())
	}
	return events, nil
}

func (repo *eventRepository) QueryEvents(ctx context.Context, userID string, isCompleted bool) ([]event.Event, error) {
	return repo.selectEvents(ctx, `
		SELECT * FROM events WHERE user_id = $1 AND is_completed = $2 ORDER BY due_at`, userID, isCompleted)
}

func (repo *eventRepository) QueryEventsByCourse(ctx context.Context, userID, courseID string) ([]event.Event, error) {
	return repo.selectEvents(ctx, `
		SELECT * FROM events WHERE user_id = $1 AND course_id = $2 ORDER BY due_at`, userID, courseID)
}

func (repo *eventRepository) QueryPendingEvents(ctx context.Context, userID string, dueFrom time.Time) ([]event.Event, error) {
	return repo.selectEvents(ctx, `
		SELECT * FROM events
		WHERE user_id = $1 AND is_completed = FALSE AND due_at >= $2
		ORDER BY due_at`, userID, dueFrom)
}

func (repo *eventRepository) QueryEventsDueBetween(ctx context.Context, userID string, from, to time.Time) ([]event.Event, error) {
	return repo.selectEvents(ctx, `
		SELECT * FROM events
		WHERE user_id = $1 AND due_at >= $2 AND due_at < $3
		ORDER BY due_at`, userID, from, to)
}

func (repo *eventRepository) GetNextEventDue(ctx context.Context, userID string, after time.Time) (event.Event, error) {
	var row eventRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM events
		WHERE user_id = $1 AND is_completed = FALSE AND due_at > $2
		ORDER BY due_at
		LIMIT 1`, userID, after)
	if err != nil {
		if err == sql.ErrNoRows {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting next event due")
	}
	return row.toEvent(), nil
}

func (repo *eventRepository) SumEventWeights(ctx context.Context, userID, courseID string) (float64, error) {
	var sum float64
	err := repo.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(weight), 0) FROM events WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	return sum, errors.Wrap(err, "summing event weights")
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE events
		SET title = :title, type = :type, description = :description, weight = :weight,
		    grade = :grade, is_completed = :is_completed, due_at = :due_at, updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`,
		newEventRow(ev),
	)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return ev, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.Wrap(err, "deleting event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.ErrNotFound
	}
	return nil
}
