package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	testutil "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/tests"
)

func mockEventNow(t *testing.T, now time.Time) {
	t.Helper()

	prev := event.NowFunc
	event.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { event.NowFunc = prev })
}

func Test_todoApi_smartTodo(t *testing.T) {
	app := setup(t)

	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	mockEventNow(t, now)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	crs := testutil.CreateCourse(t, courseRepo, usr.ID, "Databases", "DBS501",
		time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC), nil)

	// course average so far: 70
	testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Q1", "quiz", 30, nullFloat(70), now.AddDate(0, 0, -10))

	urgent := testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Midterm", "exam", 30, nullFloat(), now.AddDate(0, 0, 1))
	later := testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Essay", "assignment", 10, nullFloat(), now.AddDate(0, 0, 9))

	// auth required
	req, rec := newRequest(http.MethodGet, "/v1/todo")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	req, rec = newAuthRequest(http.MethodGet, "/v1/todo", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("todo: code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var scored []event.ScoredEvent
	decodeBody(t, rec, &scored)
	if len(scored) != 2 {
		t.Fatalf("todo: len = %d; want 2", len(scored))
	}
	if scored[0].ID != urgent.ID || scored[1].ID != later.ID {
		t.Errorf("todo: order = [%s, %s]; want [%s, %s]", scored[0].Title, scored[1].Title, urgent.Title, later.Title)
	}
	if scored[0].ImportanceScore <= scored[1].ImportanceScore {
		t.Errorf("todo: scores not descending: %v <= %v", scored[0].ImportanceScore, scored[1].ImportanceScore)
	}

	courseGrade := nullFloat(70)
	if want := event.ImportanceScore(urgent, now, courseGrade); scored[0].ImportanceScore != want {
		t.Errorf("todo: score = %v; want %v", scored[0].ImportanceScore, want)
	}
	if scored[0].Course == nil || scored[0].Course.ID != crs.ID {
		t.Errorf("todo: course not attached to %s", scored[0].Title)
	}
}

func Test_profileApi(t *testing.T) {
	app := setup(t)

	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	mockEventNow(t, now)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	// empty profile
	req, rec := newAuthRequest(http.MethodGet, "/v1/profile", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var resp ProfileResponse
	decodeBody(t, rec, &resp)
	if resp.HasEvents || resp.CompletionPercentage != 0 || resp.UpcomingEvent != nil {
		t.Errorf("profile: want empty; got %+v", resp)
	}

	crs := testutil.CreateCourse(t, courseRepo, usr.ID, "Databases", "DBS501",
		time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC), nil)

	// 1 of 3 semester events done
	testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Q1", "quiz", 10, nullFloat(70), now.AddDate(0, 0, -14))
	next := testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Midterm", "exam", 30, nullFloat(), now.AddDate(0, 0, 2))
	testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Final", "exam", 40, nullFloat(), now.AddDate(0, 0, 30))

	req, rec = newAuthRequest(http.MethodGet, "/v1/profile", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &resp)

	if resp.User.ID != usr.ID {
		t.Errorf("profile: user = %+v", resp.User)
	}
	if !resp.HasEvents {
		t.Error("profile: hasEvents = false")
	}
	if resp.CompletionPercentage != 33 {
		t.Errorf("profile: completionPercentage = %d; want 33", resp.CompletionPercentage)
	}
	if resp.UpcomingEvent == nil || resp.UpcomingEvent.ID != next.ID {
		t.Fatalf("profile: unexpected upcoming event %+v", resp.UpcomingEvent)
	}
	if resp.UpcomingEvent.Course == nil || resp.UpcomingEvent.Course.ID != crs.ID {
		t.Errorf("profile: course not attached to upcoming event")
	}
}
