// Package inmemdb provides map-backed repositories for tests and local
// development. Data is process-local and lost on restart.
package inmemdb

import (
	"strconv"
	"sync"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/user"
)

type DB struct {
	mutex   sync.RWMutex
	pkCount int

	users   map[string]*user.User
	courses map[string]*course.Course
	classes map[string]*course.ClassOccurrence
	events  map[string]*event.Event
	goals   map[string]*goal.Goal
}

func NewDB() *DB {
	db := new(DB)
	db.reset()
	return db
}

// nextPK must be called with the write lock held.
func (db *DB) nextPK() string {
	db.pkCount++
	return strconv.Itoa(db.pkCount)
}

func (db *DB) reset() {
	db.users = make(map[string]*user.User)
	db.courses = make(map[string]*course.Course)
	db.classes = make(map[string]*course.ClassOccurrence)
	db.events = make(map[string]*event.Event)
	db.goals = make(map[string]*goal.Goal)
}

// Reset drops all data; test helper.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.reset()
}
