package exportsvc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

// Dataset is the table state an export renders from. The store only tracks
// the request and its approval state; content generation lives here, outside
// the core, and callers must only invoke it for APPROVED requests.
type Dataset struct {
	Students   []school.Student
	Payments   []finance.Payment
	Attendance []academics.Attendance
	Grades     []academics.Grade
}

type section struct {
	name   string
	header []string
	rows   [][]string
}

// Render produces the export content for an approved request. PDF requests
// download as CSV content.
func Render(e exports.ExportRequest, ds Dataset) (*bytes.Buffer, string, string, error) {
	sections := sectionsFor(e, ds)

	switch e.Format {
	case exports.FormatExcel:
		buf, err := renderExcel(sections)
		return buf, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename(e, "xlsx"), err
	default: // CSV and PDF
		buf, err := renderCSV(sections)
		return buf, "text/csv", filename(e, "csv"), err
	}
}

func filename(e exports.ExportRequest, ext string) string {
	return fmt.Sprintf("%s_%s.%s", strings.ToLower(string(e.DataType)), e.ID, ext)
}

func sectionsFor(e exports.ExportRequest, ds Dataset) []section {
	switch e.DataType {
	case exports.DataStudentRecords:
		return []section{studentSection(e, ds)}
	case exports.DataFeeRecords:
		return []section{paymentSection(e, ds)}
	case exports.DataAttendanceRecords:
		return []section{attendanceSection(e, ds)}
	case exports.DataGradeRecords:
		return []section{gradeSection(e, ds)}
	default: // FULL_REPORT
		return []section{
			studentSection(e, ds),
			paymentSection(e, ds),
			attendanceSection(e, ds),
			gradeSection(e, ds),
		}
	}
}

func studentSection(e exports.ExportRequest, ds Dataset) section {
	s := section{
		name:   "Students",
		header: []string{"admission_no", "name", "class_id", "boarding_status", "status", "parent_name", "parent_contact", "enrollment_date", "fee_balance"},
	}
	for _, st := range ds.Students {
		if e.StudentID != "" && st.ID != e.StudentID {
			continue
		}
		if e.ClassID != "" && st.ClassID != e.ClassID {
			continue
		}
		s.rows = append(s.rows, []string{
			st.AdmissionNo, st.Name, st.ClassID, string(st.BoardingStatus), string(st.Status),
			st.ParentName, st.ParentContact, st.EnrollmentDate, fmt.Sprint(st.FeeBalance),
		})
	}
	return s
}

func paymentSection(e exports.ExportRequest, ds Dataset) section {
	s := section{
		name:   "Payments",
		header: []string{"receipt_no", "student_id", "amount", "method", "status", "date", "recorded_by"},
	}
	for _, p := range ds.Payments {
		if e.StudentID != "" && p.StudentID != e.StudentID {
			continue
		}
		s.rows = append(s.rows, []string{
			p.ReceiptNo, p.StudentID, fmt.Sprint(p.Amount), string(p.Method), string(p.Status),
			p.Date.Format("2006-01-02"), p.RecordedBy,
		})
	}
	return s
}

func attendanceSection(e exports.ExportRequest, ds Dataset) section {
	s := section{
		name:   "Attendance",
		header: []string{"date", "student_id", "class_id", "status", "marked_by"},
	}
	for _, a := range ds.Attendance {
		if e.StudentID != "" && a.StudentID != e.StudentID {
			continue
		}
		if e.ClassID != "" && a.ClassID != e.ClassID {
			continue
		}
		// days sort lexicographically
		if e.DateRange != nil && (a.Date < e.DateRange.From || a.Date > e.DateRange.To) {
			continue
		}
		s.rows = append(s.rows, []string{a.Date, a.StudentID, a.ClassID, string(a.Status), a.MarkedBy})
	}
	return s
}

func gradeSection(e exports.ExportRequest, ds Dataset) section {
	s := section{
		name:   "Grades",
		header: []string{"student_id", "class_id", "subject", "score", "grade", "term", "year"},
	}
	for _, g := range ds.Grades {
		if e.StudentID != "" && g.StudentID != e.StudentID {
			continue
		}
		if e.ClassID != "" && g.ClassID != e.ClassID {
			continue
		}
		s.rows = append(s.rows, []string{
			g.StudentID, g.ClassID, g.Subject, fmt.Sprint(g.Score), g.Grade, string(g.Term), fmt.Sprint(g.Year),
		})
	}
	return s
}

func renderCSV(sections []section) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	for i, s := range sections {
		if i > 0 {
			// blank line between report sections
			buf.WriteString("\n")
		}
		if err := w.Write(s.header); err != nil {
			return nil, errors.Wrap(err, "writing csv header")
		}
		if err := w.WriteAll(s.rows); err != nil {
			return nil, errors.Wrap(err, "writing csv rows")
		}
		w.Flush()
	}
	return buf, w.Error()
}

func renderExcel(sections []section) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sections {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, errors.Wrap(err, "renaming sheet")
			}
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				return nil, errors.Wrap(err, "adding sheet")
			}
		}
		for col, h := range s.header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(s.name, cell, h); err != nil {
				return nil, errors.Wrap(err, "writing header cell")
			}
		}
		for row, cells := range s.rows {
			for col, v := range cells {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(s.name, cell, v); err != nil {
					return nil, errors.Wrap(err, "writing cell")
				}
			}
		}
	}
	return f.WriteToBuffer()
}
