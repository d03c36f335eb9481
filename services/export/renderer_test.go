package exportsvc

import (
	"strings"
	"testing"

	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/school"
)

func testDataset() Dataset {
	return Dataset{
		Students: []school.Student{
			{ID: "s1", AdmissionNo: "ADM20260001", Name: "Bob Otieno", ClassID: "c1"},
			{ID: "s2", AdmissionNo: "ADM20260002", Name: "Carol Achieng", ClassID: "c2"},
		},
		Attendance: []academics.Attendance{
			{ID: "a1", StudentID: "s1", ClassID: "c1", Date: "2026-08-20", Status: academics.AttendancePresent},
			{ID: "a2", StudentID: "s1", ClassID: "c1", Date: "2026-08-24", Status: academics.AttendanceAbsent},
		},
	}
}

func TestRenderCSVFiltersStudents(t *testing.T) {
	e := exports.ExportRequest{
		ID:       "e1",
		DataType: exports.DataStudentRecords,
		Format:   exports.FormatCSV,
		ClassID:  "c1",
	}
	buf, contentType, filename, err := Render(e, testDataset())
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if contentType != "text/csv" {
		t.Errorf("contentType = %q; want text/csv", contentType)
	}
	if filename != "student_records_e1.csv" {
		t.Errorf("filename = %q; want student_records_e1.csv", filename)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 { // header + the one c1 student
		t.Fatalf("got %d lines; want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "ADM20260001") || strings.Contains(buf.String(), "ADM20260002") {
		t.Errorf("wrong students exported:\n%s", buf.String())
	}
}

func TestRenderCSVDateRange(t *testing.T) {
	e := exports.ExportRequest{
		ID:        "e1",
		DataType:  exports.DataAttendanceRecords,
		Format:    exports.FormatPDF, // PDF downloads as CSV content
		DateRange: &exports.DateRange{From: "2026-08-22", To: "2026-08-28"},
	}
	buf, _, filename, err := Render(e, testDataset())
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if filename != "attendance_records_e1.csv" {
		t.Errorf("filename = %q; want attendance_records_e1.csv", filename)
	}
	if !strings.Contains(buf.String(), "2026-08-24") || strings.Contains(buf.String(), "2026-08-20") {
		t.Errorf("date range not applied:\n%s", buf.String())
	}
}

func TestRenderFullReportExcel(t *testing.T) {
	e := exports.ExportRequest{
		ID:       "e1",
		DataType: exports.DataFullReport,
		Format:   exports.FormatExcel,
	}
	buf, contentType, filename, err := Render(e, testDataset())
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty workbook")
	}
	if contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("contentType = %q", contentType)
	}
	if filename != "full_report_e1.xlsx" {
		t.Errorf("filename = %q; want full_report_e1.xlsx", filename)
	}
}
