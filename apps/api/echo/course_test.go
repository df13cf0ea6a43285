package echoapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	testutil "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/tests"
)

func courseBody(title, code string, start, end time.Time, weekday int) []byte {
	return []byte(fmt.Sprintf(`{
		"title": %q,
		"code": %q,
		"startDate": %q,
		"endDate": %q,
		"instructor": {"name": "Prof. Test", "email": "prof@test.cd"},
		"schedule": [{"classType": "lecture", "weekday": %d, "startTime": 43200, "endTime": 46800}]
	}`, title, code, start.Format(time.RFC3339), end.Format(time.RFC3339), weekday))
}

func Test_courseApi(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	end := today.AddDate(0, 0, 7)
	tomorrowWeekday := int(today.AddDate(0, 0, 1).Weekday())

	// auth required
	req, rec := newRequest(http.MethodGet, "/v1/courses")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	// invalid: end before start
	req, rec = newAuthRequest(http.MethodPost, "/v1/courses", token, courseBody("Databases", "DBS501", end, today, tomorrowWeekday))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"endDate": "end date must not precede start date"}),
	}, rec)

	// create
	req, rec = newAuthRequest(http.MethodPost, "/v1/courses", token, courseBody("Databases", "DBS501", today, end, tomorrowWeekday))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var crs course.Course
	decodeBody(t, rec, &crs)
	if crs.ID == "" || crs.Status != course.StatusActive {
		t.Fatalf("create: unexpected course %+v", crs)
	}

	// the schedule is materialized into dated occurrences; exactly one falls
	// in the coming week
	req, rec = newAuthRequest(http.MethodGet, "/v1/classes", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("classes: code = %v", rec.Code)
	}
	var occs []course.ClassOccurrence
	decodeBody(t, rec, &occs)
	if len(occs) != 1 {
		t.Fatalf("classes: len = %d; want 1", len(occs))
	}
	if occs[0].CourseID != crs.ID || occs[0].ClassType != course.ClassTypeLecture {
		t.Errorf("classes: unexpected occurrence %+v", occs[0])
	}

	// query
	req, rec = newAuthRequest(http.MethodGet, "/v1/courses", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, crs)}, rec)

	// retrieve
	req, rec = newAuthRequest(http.MethodGet, "/v1/courses/"+crs.ID, token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, crs)}, rec)

	// retrieve unknown
	req, rec = newAuthRequest(http.MethodGet, "/v1/courses/lol", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// another user sees nothing
	stranger := testutil.CreateUser(t, usrRepo, "Stranger", "stranger1", "stranger@test.cd", "", true)
	req, rec = newAuthRequest(http.MethodGet, "/v1/courses/"+crs.ID, getToken(t, stranger))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// update title
	req, rec = newAuthRequest(http.MethodPut, "/v1/courses/"+crs.ID, token, []byte(`{"title":"Advanced Databases"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &crs)
	if crs.Title != "Advanced Databases" {
		t.Errorf("update: title = %s", crs.Title)
	}

	// destroy cascades to classes and events
	dueAt := time.Now().UTC().Add(48 * time.Hour)
	testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "A1", "assignment", 10, nullFloat(), dueAt)

	req, rec = newAuthRequest(http.MethodDelete, "/v1/courses/"+crs.ID, token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, DeleteCourseResponse{DeletedClasses: 1, DeletedEvents: 1}),
	}, rec)

	// gone
	req, rec = newAuthRequest(http.MethodGet, "/v1/courses", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)
}

func Test_courseApi_lazyDeactivation(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	past := testutil.CreateCourse(t, courseRepo, usr.ID, "Old Course", "OLD101",
		time.Now().UTC().AddDate(0, -4, 0), time.Now().UTC().AddDate(0, 0, -1), nil)
	current := testutil.CreateCourse(t, courseRepo, usr.ID, "New Course", "NEW101",
		time.Now().UTC(), time.Now().UTC().AddDate(0, 4, 0), nil)

	// expired active courses are dropped from the listing and flipped inactive
	req, rec := newAuthRequest(http.MethodGet, "/v1/courses", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, current)}, rec)

	var inactive []course.Course
	req, rec = newAuthRequest(http.MethodGet, "/v1/courses?status=inactive", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query inactive: code = %v", rec.Code)
	}
	decodeBody(t, rec, &inactive)
	if len(inactive) != 1 || inactive[0].ID != past.ID {
		t.Errorf("query inactive: got %+v", inactive)
	}
}
