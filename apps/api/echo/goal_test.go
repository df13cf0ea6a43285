package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
	testutil "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/tests"
)

func Test_goalApi(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	now := time.Now().UTC()
	crs := testutil.CreateCourse(t, courseRepo, usr.ID, "Databases", "DBS501",
		now.AddDate(0, 0, -7), now.AddDate(0, 2, 0), nil)

	// auth required
	req, rec := newRequest(http.MethodGet, "/v1/goals")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	// unknown course
	req, rec = newAuthRequest(http.MethodPost, "/v1/goals", token, []byte(`{"courseId":"lol","targetGrade":80}`))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)

	// create
	req, rec = newAuthRequest(http.MethodPost, "/v1/goals", token, []byte(`{"courseId":"`+crs.ID+`","targetGrade":80}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var g goal.Goal
	decodeBody(t, rec, &g)
	if g.ID == "" || g.TargetGrade != 80 {
		t.Fatalf("create: unexpected goal %+v", g)
	}

	// one goal per course
	req, rec = newAuthRequest(http.MethodPost, "/v1/goals", token, []byte(`{"courseId":"`+crs.ID+`","targetGrade":90}`))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"courseId": goal.ErrGoalExists.Error()}),
	}, rec)

	// query
	req, rec = newAuthRequest(http.MethodGet, "/v1/goals", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, g)}, rec)

	// adjust the target
	req, rec = newAuthRequest(http.MethodPatch, "/v1/goals/"+g.ID, token, []byte(`{"targetGrade":75}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: code = %v; body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &g)
	if g.TargetGrade != 75 {
		t.Errorf("update: targetGrade = %v", g.TargetGrade)
	}

	// out-of-range target
	req, rec = newAuthRequest(http.MethodPatch, "/v1/goals/"+g.ID, token, []byte(`{"targetGrade":120}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("update out of range: code = %v", rec.Code)
	}

	// destroy
	req, rec = newAuthRequest(http.MethodDelete, "/v1/goals/"+g.ID, token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("destroy: code = %v", rec.Code)
	}
	req, rec = newAuthRequest(http.MethodGet, "/v1/goals", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)
}

func Test_goalApi_report(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe123", "awe@test.cd", "", true)
	token := getToken(t, usr)

	now := time.Now().UTC()
	crs := testutil.CreateCourse(t, courseRepo, usr.ID, "Databases", "DBS501",
		now.AddDate(0, 0, -30), now.AddDate(0, 2, 0), nil)
	g := testutil.CreateGoal(t, goalRepo, usr.ID, crs.ID, 80)

	// graded past: 30% at 90, 20% at 60; known future: one 25% exam
	testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "A1", "assignment", 30, nullFloat(90), now.AddDate(0, 0, -20))
	testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Q1", "quiz", 20, nullFloat(60), now.AddDate(0, 0, -10))
	future := testutil.CreateEvent(t, eventRepo, usr.ID, crs.ID, "Midterm", "exam", 25, nullFloat(), now.AddDate(0, 0, 10))

	req, rec := newAuthRequest(http.MethodGet, "/v1/goals/"+g.ID+"/report", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("report: code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var rpt goal.Report
	decodeBody(t, rec, &rpt)

	if rpt.GoalID != g.ID || rpt.Course.ID != crs.ID || rpt.TargetGrade != 80 {
		t.Errorf("report: header mismatch %+v", rpt)
	}
	if len(rpt.PastEvents) != 2 || len(rpt.UpcomingTasks) != 1 {
		t.Fatalf("report: pastEvents = %d, upcomingTasks = %d", len(rpt.PastEvents), len(rpt.UpcomingTasks))
	}

	// weighted average: (90*30 + 60*20) / 50 = 78
	if !rpt.CurrentGrade.Valid || rpt.CurrentGrade.Float64 != 78 {
		t.Errorf("report: currentGrade = %+v; want 78", rpt.CurrentGrade)
	}
	// remaining pool = 25 known + 25 unaccounted; required = (80*100 - 78*50) / 50 = 82
	if !rpt.RequiredAvgForRemaining.Valid || rpt.RequiredAvgForRemaining.Float64 != 82 {
		t.Errorf("report: requiredAvgForRemaining = %+v; want 82", rpt.RequiredAvgForRemaining)
	}
	if !rpt.Achievable || rpt.Recommendation != goal.RecommendationOnTrack {
		t.Errorf("report: achievable = %v, recommendation = %s", rpt.Achievable, rpt.Recommendation)
	}

	for _, past := range rpt.PastEvents {
		want := goal.ContributionNegative
		if past.Grade.Float64 >= 80 {
			want = goal.ContributionPositive
		}
		if past.Contribution != want {
			t.Errorf("report: contribution of %s = %s; want %s", past.Title, past.Contribution, want)
		}
	}
	if rpt.UpcomingTasks[0].ID != future.ID || rpt.UpcomingTasks[0].Importance != goal.ImportanceHigh {
		t.Errorf("report: unexpected upcoming task %+v", rpt.UpcomingTasks[0])
	}

	// unknown goal
	req, rec = newAuthRequest(http.MethodGet, "/v1/goals/lol/report", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}
