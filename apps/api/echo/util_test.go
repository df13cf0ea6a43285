package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/user"
	emailsvc "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/services/email"
	logsvc "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/services/logger"
	inmemdb "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/storage/database/inmem"
	testutil "github.com/kogun86/PRJ-666-GROUP-1-BACKEND/tests"
)

var (
	usrRepo    user.Repository
	courseRepo course.Repository
	eventRepo  event.Repository
	goalRepo   goal.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) *server {
	t.Helper()

	conf := testutil.NewConfig()

	// set up DB & repos
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	courseRepo = inmemdb.NewCourseRepository(db)
	eventRepo = inmemdb.NewEventRepository(db)
	goalRepo = inmemdb.NewGoalRepository(db)

	// set up services
	emailsvc.ClearSentMessages()
	mailSvc := emailsvc.NewSilentConsoleService()
	usrSvc := user.NewService(usrRepo, mailSvc)
	courseSvc := course.NewService(courseRepo)
	eventSvc := event.NewService(eventRepo, courseRepo)
	goalSvc := goal.NewService(goalRepo, courseRepo, eventRepo)

	validate, translator := testutil.NewValidator()

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	// set up server
	return NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		UserSvc:        usrSvc,
		CourseSvc:      courseSvc,
		EventSvc:       eventSvc,
		GoalSvc:        goalSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

// checkCodeAndData compares the response to tt.wantCode and tt.wantData.
// A nil wantData skips the body comparison.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// nullFloat builds a null.Float64: valid when a value is given, null otherwise.
func nullFloat(f ...float64) null.Float64 {
	if len(f) > 0 {
		return null.Float64From(f[0])
	}
	return null.Float64{}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody(): %v; body = %s", err, rec.Body.String())
	}
}
