package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs.ID = repo.db.nextPK()
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, userID, id string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.courses[id]; ok && crs.UserID == userID {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCourses(_ context.Context, userID, status string) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0)
	for _, crs := range repo.db.courses {
		if crs.UserID == userID && crs.Status == status {
			courses = append(courses, *crs)
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].ID < courses[j].ID
		}
		return courses[i].CreatedAt.Before(courses[j].CreatedAt)
	})
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.courses[crs.ID]
	if !ok || orig.UserID != crs.UserID {
		return course.Course{}, course.ErrNotFound
	}
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) DeactivateCourses(_ context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if crs, ok := repo.db.courses[id]; ok {
			crs.Status = course.StatusInactive
			crs.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, userID, id string) (classes, events int64, err error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs, ok := repo.db.courses[id]
	if !ok || crs.UserID != userID {
		return 0, 0, course.ErrNotFound
	}
	for cid, occ := range repo.db.classes {
		if occ.CourseID == id {
			delete(repo.db.classes, cid)
			classes++
		}
	}
	for eid, ev := range repo.db.events {
		if ev.CourseID == id {
			delete(repo.db.events, eid)
			events++
		}
	}
	for gid, g := range repo.db.goals {
		if g.CourseID == id {
			delete(repo.db.goals, gid)
		}
	}
	delete(repo.db.courses, id)
	return classes, events, nil
}

func (repo *courseRepository) InsertClassOccurrences(_ context.Context, occs []course.ClassOccurrence) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.insertOccurrences(occs)
	return nil
}

func (repo *courseRepository) ReplaceClassOccurrences(_ context.Context, courseID string, occs []course.ClassOccurrence) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, occ := range repo.db.classes {
		if occ.CourseID == courseID {
			delete(repo.db.classes, id)
		}
	}
	repo.insertOccurrences(occs)
	return nil
}

// insertOccurrences must be called with the write lock held.
func (repo *courseRepository) insertOccurrences(occs []course.ClassOccurrence) {
	for _, occ := range occs {
		occ := occ
		occ.ID = repo.db.nextPK()
		repo.db.classes[occ.ID] = &occ
	}
}

func (repo *courseRepository) QueryClassOccurrences(_ context.Context, userID string, from, to time.Time) ([]course.ClassOccurrence, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	occs := make([]course.ClassOccurrence, 0)
	for _, occ := range repo.db.classes {
		if occ.UserID != userID {
			continue
		}
		if occ.StartTime.Before(from) || !occ.StartTime.Before(to) {
			continue
		}
		occs = append(occs, *occ)
	}
	sort.Slice(occs, func(i, j int) bool { return occs[i].StartTime.Before(occs[j].StartTime) })
	return occs, nil
}
