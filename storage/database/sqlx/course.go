package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

type courseRow struct {
	ID              string      `db:"id"`
	UserID          string      `db:"user_id"`
	Title           string      `db:"title"`
	Code            string      `db:"code"`
	Section         null.String `db:"section"`
	Status          string      `db:"status"`
	StartDate       time.Time   `db:"start_date"`
	EndDate         time.Time   `db:"end_date"`
	InstructorName  string      `db:"instructor_name"`
	InstructorEmail string      `db:"instructor_email"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

type sessionRow struct {
	ID        int64       `db:"id"`
	CourseID  string      `db:"course_id"`
	ClassType string      `db:"class_type"`
	Weekday   int         `db:"weekday"`
	StartSec  int         `db:"start_sec"`
	EndSec    int         `db:"end_sec"`
	Location  null.String `db:"location"`
}

type occurrenceRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	ClassType string    `db:"class_type"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

func newCourseRow(crs course.Course) courseRow {
	return courseRow{
		ID:              crs.ID,
		UserID:          crs.UserID,
		Title:           crs.Title,
		Code:            crs.Code,
		Section:         crs.Section,
		Status:          crs.Status,
		StartDate:       crs.StartDate,
		EndDate:         crs.EndDate,
		InstructorName:  crs.Instructor.Name,
		InstructorEmail: crs.Instructor.Email,
		CreatedAt:       crs.CreatedAt,
		UpdatedAt:       crs.UpdatedAt,
	}
}

func (r courseRow) toCourse(schedule []course.WeeklySession) course.Course {
	return course.Course{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Code:      r.Code,
		Section:   r.Section,
		Status:    r.Status,
		StartDate: r.StartDate.UTC(),
		EndDate:   r.EndDate.UTC(),
		Instructor: course.Instructor{
			Name:  r.InstructorName,
			Email: r.InstructorEmail,
		},
		Schedule:  schedule,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (r sessionRow) toSession() course.WeeklySession {
	return course.WeeklySession{
		ClassType: r.ClassType,
		Weekday:   r.Weekday,
		StartSec:  r.StartSec,
		EndSec:    r.EndSec,
		Location:  r.Location,
	}
}

func (r occurrenceRow) toOccurrence() course.ClassOccurrence {
	return course.ClassOccurrence{
		ID:        r.ID,
		UserID:    r.UserID,
		CourseID:  r.CourseID,
		ClassType: r.ClassType,
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
	}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.NewString()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO courses (id, user_id, title, code, section, status, start_date, end_date,
		                     instructor_name, instructor_email, created_at, updated_at)
		VALUES (:id, :user_id, :title, :code, :section, :status, :start_date, :end_date,
		        :instructor_name, :instructor_email, :created_at, :updated_at)`,
		newCourseRow(crs),
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	if err = insertSessions(ctx, tx, crs.ID, crs.Schedule); err != nil {
		return course.Course{}, err
	}
	if err = tx.Commit(); err != nil {
		return course.Course{}, errors.Wrap(err, "committing tx")
	}
	return crs, nil
}

func insertSessions(ctx context.Context, tx *sqlx.Tx, courseID string, schedule []course.WeeklySession) error {
	if len(schedule) == 0 {
		return nil
	}
	rows := make([]sessionRow, 0, len(schedule))
	for _, s := range schedule {
		rows = append(rows, sessionRow{
			CourseID:  courseID,
			ClassType: s.ClassType,
			Weekday:   s.Weekday,
			StartSec:  s.StartSec,
			EndSec:    s.EndSec,
			Location:  s.Location,
		})
	}
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO course_sessions (course_id, class_type, weekday, start_sec, end_sec, location)
		VALUES (:course_id, :class_type, :weekday, :start_sec, :end_sec, :location)`,
		rows,
	)
	return errors.Wrap(err, "inserting course sessions")
}

func (repo *courseRepository) getSchedule(ctx context.Context, courseID string) ([]course.WeeklySession, error) {
	var rows []sessionRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM course_sessions WHERE course_id = $1 ORDER BY id`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "getting course sessions")
	}
	schedule := make([]course.WeeklySession, 0, len(rows))
	for _, r := range rows {
		schedule = append(schedule, r.toSession())
	}
	return schedule, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, userID, id string) (course.Course, error) {
	var row courseRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM courses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	schedule, err := repo.getSchedule(ctx, row.ID)
	if err != nil {
		return course.Course{}, err
	}
	return row.toCourse(schedule), nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, userID, status string) ([]course.Course, error) {
	var rows []courseRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM courses WHERE user_id = $1 AND status = $2 ORDER BY created_at`, userID, status)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		schedule, err := repo.getSchedule(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		courses = append(courses, row.toCourse(schedule))
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.NamedExecContext(ctx, `
		UPDATE courses
		SET title = :title, code = :code, section = :section, status = :status,
		    start_date = :start_date, end_date = :end_date,
		    instructor_name = :instructor_name, instructor_email = :instructor_email,
		    updated_at = :updated_at
		WHERE user_id = :user_id AND id = :id`,
		newCourseRow(crs),
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, course.ErrNotFound
	}

	// schedule templates have no identity of their own; rewrite them wholesale
	if _, err = tx.ExecContext(ctx, `DELETE FROM course_sessions WHERE course_id = $1`, crs.ID); err != nil {
		return course.Course{}, errors.Wrap(err, "deleting course sessions")
	}
	if err = insertSessions(ctx, tx, crs.ID, crs.Schedule); err != nil {
		return course.Course{}, err
	}
	if err = tx.Commit(); err != nil {
		return course.Course{}, errors.Wrap(err, "committing tx")
	}
	return crs, nil
}

func (repo *courseRepository) DeactivateCourses(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`UPDATE courses SET status = ?, updated_at = ? WHERE id IN (?)`,
		course.StatusInactive, time.Now().UTC(), ids)
	if err != nil {
		return errors.Wrap(err, "building deactivate query")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...)
	return errors.Wrap(err, "deactivating courses")
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, userID, id string) (classes, events int64, err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM classes WHERE course_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, 0, errors.Wrap(err, "deleting classes")
	}
	classes, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM events WHERE course_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, 0, errors.Wrap(err, "deleting events")
	}
	events, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, 0, errors.Wrap(err, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, 0, course.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, errors.Wrap(err, "committing tx")
	}
	return classes, events, nil
}

func (repo *courseRepository) InsertClassOccurrences(ctx context.Context, occs []course.ClassOccurrence) error {
	return insertOccurrences(ctx, repo.db, occs)
}

func (repo *courseRepository) ReplaceClassOccurrences(ctx context.Context, courseID string, occs []course.ClassOccurrence) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM classes WHERE course_id = $1`, courseID); err != nil {
		return errors.Wrap(err, "deleting classes")
	}
	if err = insertOccurrences(ctx, tx, occs); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

func insertOccurrences(ctx context.Context, db sqlx.ExtContext, occs []course.ClassOccurrence) error {
	if len(occs) == 0 {
		return nil
	}
	rows := make([]occurrenceRow, 0, len(occs))
	for _, occ := range occs {
		rows = append(rows, occurrenceRow{
			ID:        uuid.NewString(),
			UserID:    occ.UserID,
			CourseID:  occ.CourseID,
			ClassType: occ.ClassType,
			StartTime: occ.StartTime,
			EndTime:   occ.EndTime,
		})
	}
	_, err := sqlx.NamedExecContext(ctx, db, `
		INSERT INTO classes (id, user_id, course_id, class_type, start_time, end_time)
		VALUES (:id, :user_id, :course_id, :class_type, :start_time, :end_time)`,
		rows,
	)
	return errors.Wrap(err, "inserting classes")
}

func (repo *courseRepository) QueryClassOccurrences(ctx context.Context, userID string, from, to time.Time) ([]course.ClassOccurrence, error) {
	var rows []occurrenceRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM classes
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`, userID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	occs := make([]course.ClassOccurrence, 0, len(rows))
	for _, r := range rows {
		occs = append(occs, r.toOccurrence())
	}
	return occs, nil
}
