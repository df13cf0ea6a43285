package echoapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	testutil "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/tests"
)

func eventBody(title, courseID, typ string, weight float64, dueAt time.Time) []byte {
	return []byte(fmt.Sprintf(`{
		"title": %q,
		"courseId": %q,
		"type": %q,
		"weight": %v,
		"end": %q
	}`, title, courseID, typ, weight, dueAt.Format(time.RFC3339)))
}

func Test_eventApi(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	now := time.Now().UTC()
	crs := testutil.CreateCourse(t, courseRepo, usr.ID, "Databases", "DBS501",
		now.AddDate(0, 0, -7), now.AddDate(0, 2, 0), nil)
	dueAt := now.Add(48 * time.Hour).Truncate(time.Second)

	// auth required
	req, rec := newRequest(http.MethodGet, "/v1/events")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	// unknown course
	req, rec = newAuthRequest(http.MethodPost, "/v1/events", token, eventBody("A1", "lol", "assignment", 10, dueAt))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// unknown type
	req, rec = newAuthRequest(http.MethodPost, "/v1/events", token, eventBody("A1", crs.ID, "party", 10, dueAt))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: code = %v; body = %s", rec.Code, rec.Body.String())
	}

	// create
	req, rec = newAuthRequest(http.MethodPost, "/v1/events", token, eventBody("A1", crs.ID, "assignment", 60, dueAt))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var ev event.Event
	decodeBody(t, rec, &ev)
	if ev.ID == "" || ev.IsCompleted || ev.Graded() {
		t.Fatalf("create: unexpected event %+v", ev)
	}

	// the course's declared weights may not exceed 100%
	req, rec = newAuthRequest(http.MethodPost, "/v1/events", token, eventBody("A2", crs.ID, "exam", 50, dueAt))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"weight": "total weight exceeds 100%"}),
	}, rec)

	// query pending
	req, rec = newAuthRequest(http.MethodGet, "/v1/events", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, ev)}, rec)

	// complete and grade
	req, rec = newAuthRequest(http.MethodPatch, "/v1/events/"+ev.ID, token, []byte(`{"isCompleted":true,"grade":85}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &ev)
	if !ev.IsCompleted || !ev.Graded() || ev.Grade.Float64 != 85 {
		t.Errorf("update: unexpected event %+v", ev)
	}

	// pending list is now empty; the completed list has it
	req, rec = newAuthRequest(http.MethodGet, "/v1/events", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)

	req, rec = newAuthRequest(http.MethodGet, "/v1/events?completed=true", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, ev)}, rec)

	// destroy
	req, rec = newAuthRequest(http.MethodDelete, "/v1/events/"+ev.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("destroy: code = %v", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodDelete, "/v1/events/"+ev.ID, token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}
