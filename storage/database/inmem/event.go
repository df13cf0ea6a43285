package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) *eventRepository {
	return &eventRepository{db: db}
}

// query must be called with (at least) the read lock held.
func (repo *eventRepository) query(match func(event.Event) bool) []event.Event {
	events := make([]event.Event, 0)
	for _, ev := range repo.db.events {
		if match(*ev) {
			events = append(events, *ev)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].DueAt.Equal(events[j].DueAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].DueAt.Before(events[j].DueAt)
	})
	return events
}

func (repo *eventRepository) CreateEvent(_ context.Context, ev event.Event) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ev.ID = repo.db.nextPK()
	repo.db.events[ev.ID] = &ev
	return ev, nil
}

func (repo *eventRepository) GetEventByID(_ context.Context, userID, id string) (event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ev, ok := repo.db.events[id]; ok && ev.UserID == userID {
		return *ev, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) QueryEvents(_ context.Context, userID string, isCompleted bool) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.query(func(ev event.Event) bool {
		return ev.UserID == userID && ev.IsCompleted == isCompleted
	}), nil
}

func (repo *eventRepository) QueryEventsByCourse(_ context.Context, userID, courseID string) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.query(func(ev event.Event) bool {
		return ev.UserID == userID && ev.CourseID == courseID
	}), nil
}

func (repo *eventRepository) QueryPendingEvents(_ context.Context, userID string, dueFrom time.Time) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.query(func(ev event.Event) bool {
		return ev.UserID == userID && !ev.IsCompleted && !ev.DueAt.Before(dueFrom)
	}), nil
}

func (repo *eventRepository) QueryEventsDueBetween(_ context.Context, userID string, from, to time.Time) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.query(func(ev event.Event) bool {
		return ev.UserID == userID && !ev.DueAt.Before(from) && ev.DueAt.Before(to)
	}), nil
}

func (repo *eventRepository) GetNextEventDue(_ context.Context, userID string, after time.Time) (event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	pending := repo.query(func(ev event.Event) bool {
		return ev.UserID == userID && !ev.IsCompleted && ev.DueAt.After(after)
	})
	if len(pending) == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return pending[0], nil
}

func (repo *eventRepository) SumEventWeights(_ context.Context, userID, courseID string) (float64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var sum float64
	for _, ev := range repo.db.events {
		if ev.UserID == userID && ev.CourseID == courseID {
			sum += ev.Weight
		}
	}
	return sum, nil
}

func (repo *eventRepository) UpdateEvent(_ context.Context, ev event.Event) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.events[ev.ID]
	if !ok || orig.UserID != ev.UserID {
		return event.Event{}, event.ErrNotFound
	}
	repo.db.events[ev.ID] = &ev
	return ev, nil
}

func (repo *eventRepository) DeleteEvent(_ context.Context, userID, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if ev, ok := repo.db.events[id]; !ok || ev.UserID != userID {
		return event.ErrNotFound
	}
	delete(repo.db.events, id)
	return nil
}
