package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/school"
	testutil "github.com/tmwangi/shuledesk/tests"
)

func Test_sessionApi(t *testing.T) {
	a := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/session/accounts")
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("accounts code = %v; want 200", rec.Code)
	}
	var accounts []audit.Actor
	unmarchallObj(t, rec.Body.Bytes(), &accounts)
	if len(accounts) != 4 {
		t.Errorf("got %d accounts; want 4", len(accounts))
	}

	req, rec = newRequest(http.MethodPost, "/v1/session/select", []byte(`{"account_id":"nope"}`))
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusNotFound, marchallObj(t, httpErr{Error: "unknown account"}))

	req, rec = newRequest(http.MethodPost, "/v1/session/select", []byte(`{"account_id":"acc-principal"}`))
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("select code = %v; want 200", rec.Code)
	}
	var actor audit.Actor
	unmarchallObj(t, rec.Body.Bytes(), &actor)
	if actor.Role != "PRINCIPAL" {
		t.Errorf("Role = %q; want PRINCIPAL", actor.Role)
	}

	// sign-in lands in the audit trail, newest-first
	req, rec = newRequest(http.MethodGet, "/v1/audit-logs")
	a.app.ServeHTTP(rec, req)
	var logs []audit.Log
	unmarchallObj(t, rec.Body.Bytes(), &logs)
	if len(logs) == 0 || logs[0].Action != audit.ActionLogin || logs[0].UserID != principalID {
		t.Errorf("audit logs = %+v; want a LOGIN entry for %s first", logs, principalID)
	}
}

func Test_teacherApi_create(t *testing.T) {
	a := setup(t)

	body := []byte(`{
		"name": "Alice Wanjiru",
		"email": "a.wanjiru@school.com",
		"phone": "+254700000001",
		"subjects": ["Mathematics"],
		"status": "ACTIVE",
		"date_of_joining": "2021-01-04",
		"employee_id": "EMP0001"
	}`)

	// mutations need an acting account
	req, rec := newRequest(http.MethodPost, "/v1/teachers", body)
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusUnauthorized, marchallObj(t, errNoActor))

	req, rec = newActorRequest(http.MethodPost, "/v1/teachers", principalID, body)
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want 201 (%s)", rec.Code, rec.Body.String())
	}
	var teacher school.Teacher
	unmarchallObj(t, rec.Body.Bytes(), &teacher)
	if teacher.ID == "" || teacher.EmployeeID != "EMP0001" {
		t.Errorf("teacher = %+v; want a generated id and EMP0001", teacher)
	}
	if len(teacher.AssignedClasses) != 0 {
		t.Errorf("AssignedClasses = %v; want empty", teacher.AssignedClasses)
	}

	// employee ids are unique
	req, rec = newActorRequest(http.MethodPost, "/v1/teachers", principalID, body)
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusConflict, marchallObj(t, httpErr{Error: `employee_id "EMP0001" already exists`}))

	// field errors use json names and translations
	req, rec = newActorRequest(http.MethodPost, "/v1/teachers", principalID, []byte(`{"email":"nope"}`))
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %v; want 400", rec.Code)
	}
	var fldErrs map[string]string
	unmarchallObj(t, rec.Body.Bytes(), &fldErrs)
	if fldErrs["name"] != "this field is required" {
		t.Errorf("name error = %q; want %q", fldErrs["name"], "this field is required")
	}
	if _, ok := fldErrs["email"]; !ok {
		t.Error("missing email field error")
	}
}

func Test_classApi_deleteRestricted(t *testing.T) {
	a := setup(t)
	teacher := testutil.CreateTeacher(t, a.teacherRepo, "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, a.classRepo, "Grade 4", teacher.ID)
	student := testutil.CreateStudent(t, a.studentRepo, "Bob Otieno", "ADM20260001", class.ID, 0)

	req, rec := newActorRequest(http.MethodDelete, "/v1/classes/"+class.ID, principalID)
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusConflict, marchallObj(t, httpErr{Error: "class still has enrolled students"}))

	req, rec = newActorRequest(http.MethodDelete, "/v1/students/"+student.ID, principalID)
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete student code = %v; want 204", rec.Code)
	}

	req, rec = newActorRequest(http.MethodDelete, "/v1/classes/"+class.ID, principalID)
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete class code = %v; want 204", rec.Code)
	}

	req, rec = newRequest(http.MethodGet, "/v1/classes/"+class.ID)
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusNotFound, marchallObj(t, httpErr{Error: "class not found"}))
}

func Test_attendanceApi_upsert(t *testing.T) {
	a := setup(t)
	teacher := testutil.CreateTeacher(t, a.teacherRepo, "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, a.classRepo, "Grade 4", teacher.ID)
	student := testutil.CreateStudent(t, a.studentRepo, "Bob Otieno", "ADM20260001", class.ID, 0)

	mark := func(status string) {
		t.Helper()
		body := []byte(fmt.Sprintf(
			`{"student_id":%q,"class_id":%q,"date":"2026-08-24","status":%q}`,
			student.ID, class.ID, status,
		))
		req, rec := newActorRequest(http.MethodPost, "/v1/attendance", teacherID, body)
		a.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("mark code = %v; want 200 (%s)", rec.Code, rec.Body.String())
		}
	}

	mark("PRESENT")
	mark("ABSENT") // same day: corrects, does not duplicate

	req, rec := newRequest(http.MethodGet, "/v1/attendance?class_id="+class.ID+"&date=2026-08-24")
	a.app.ServeHTTP(rec, req)
	var records []academics.Attendance
	unmarchallObj(t, rec.Body.Bytes(), &records)
	if len(records) != 1 {
		t.Fatalf("got %d records; want 1", len(records))
	}
	if records[0].Status != academics.AttendanceAbsent || records[0].MarkedBy != teacherID {
		t.Errorf("record = %+v; want ABSENT marked by %s", records[0], teacherID)
	}
}

func Test_exportApi_workflow(t *testing.T) {
	a := setup(t)

	body := []byte(`{"data_type":"FEE_RECORDS","format":"CSV","justification":"term 2 fee reconciliation"}`)
	req, rec := newActorRequest(http.MethodPost, "/v1/exports", bursarID, body)
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create code = %v; want 201 (%s)", rec.Code, rec.Body.String())
	}
	var e exports.ExportRequest
	unmarchallObj(t, rec.Body.Bytes(), &e)
	if e.Status != exports.StatusPending || e.RequestedBy != bursarID {
		t.Fatalf("export = %+v; want PENDING requested by %s", e, bursarID)
	}

	// nothing to download until the principal approves
	req, rec = newActorRequest(http.MethodGet, "/v1/exports/"+e.ID+"/download", bursarID)
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusForbidden, marchallObj(t, httpErr{Error: "export request has not been approved"}))

	// nor may anyone else decide
	req, rec = newActorRequest(http.MethodPost, "/v1/exports/"+e.ID+"/approve", teacherID)
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusForbidden, marchallObj(t, httpErr{Error: "permission denied"}))

	req, rec = newActorRequest(http.MethodPost, "/v1/exports/"+e.ID+"/approve", principalID)
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve code = %v; want 200 (%s)", rec.Code, rec.Body.String())
	}
	unmarchallObj(t, rec.Body.Bytes(), &e)
	if e.Status != exports.StatusApproved || e.ApprovedBy != principalID || e.CompletedAt == nil {
		t.Fatalf("export = %+v; want APPROVED by %s with CompletedAt", e, principalID)
	}

	req, rec = newActorRequest(http.MethodGet, "/v1/exports/"+e.ID+"/download", bursarID)
	a.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("download code = %v; want 200 (%s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q; want text/csv", ct)
	}

	// the decision is final
	req, rec = newActorRequest(http.MethodPost, "/v1/exports/"+e.ID+"/reject", principalID, []byte(`{"reason":"changed my mind"}`))
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusConflict, marchallObj(t, httpErr{Error: "cannot reject export request in state APPROVED"}))
}

func Test_exportApi_rejectNeedsReason(t *testing.T) {
	a := setup(t)

	body := []byte(`{"data_type":"STUDENT_RECORDS","format":"PDF","justification":"records check"}`)
	req, rec := newActorRequest(http.MethodPost, "/v1/exports", bursarID, body)
	a.app.ServeHTTP(rec, req)
	var e exports.ExportRequest
	unmarchallObj(t, rec.Body.Bytes(), &e)

	req, rec = newActorRequest(http.MethodPost, "/v1/exports/"+e.ID+"/reject", principalID, []byte(`{"reason":"  "}`))
	a.app.ServeHTTP(rec, req)
	checkCodeAndData(t, rec, http.StatusBadRequest, marchallObj(t, map[string]string{"rejection_reason": "this field is required"}))

	// still pending after the failed rejection
	req, rec = newRequest(http.MethodGet, "/v1/exports/"+e.ID)
	a.app.ServeHTTP(rec, req)
	unmarchallObj(t, rec.Body.Bytes(), &e)
	if e.Status != exports.StatusPending {
		t.Errorf("Status = %s; want PENDING", e.Status)
	}
}
