package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/tmwangi/shuledesk/apps/api/echo"
	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
	emailsvc "github.com/tmwangi/shuledesk/services/email"
	inmemdb "github.com/tmwangi/shuledesk/storage/database/inmem"
)

const (
	principalID = "acc-principal"
	bursarID    = "acc-bursar"
	teacherID   = "acc-teacher"
)

var errNoActor = httpErr{Error: "no acting account selected"}

type testApp struct {
	app Server

	teacherRepo school.TeacherRepository
	classRepo   school.ClassRepository
	studentRepo school.StudentRepository
	exportSvc   *exports.Service
	auditSvc    *audit.Service
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.SnapshotDir = "" // ephemeral store

	db, err := inmemdb.Open(conf, nopLogger{})
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	accounts := NewAccountDirectory()

	a := &testApp{
		teacherRepo: inmemdb.NewTeacherRepository(db),
		classRepo:   inmemdb.NewClassRepository(db),
		studentRepo: inmemdb.NewStudentRepository(db),
	}
	a.exportSvc = exports.NewService(inmemdb.NewExportRepository(db), mailSvc, accounts, conf)
	a.auditSvc = audit.NewService(inmemdb.NewAuditRepository(db))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	a.app = NewServer(
		ServerDeps{
			Conf:         conf,
			Logger:       nopLogger{},
			SchoolSvc:    school.NewService(a.teacherRepo, a.classRepo, a.studentRepo),
			AcademicsSvc: academics.NewService(inmemdb.NewAcademicsRepository(db), a.studentRepo, a.classRepo),
			FinanceSvc:   finance.NewService(inmemdb.NewPaymentRepository(db)),
			ExportSvc:    a.exportSvc,
			AuditSvc:     a.auditSvc,
			Accounts:     accounts,
			Validate:     validate,
			Translator:   translator,
		},
	)
	return a
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

func newActorRequest(method, path, actorID string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newActorRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, data []byte, obj interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, obj); err != nil {
		t.Fatalf("unmarchallObj(): %v", err)
	}
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

func checkCodeAndData(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantData []byte) {
	t.Helper()
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(wantData))
	}
}
