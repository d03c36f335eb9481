package inmemdb

import (
	"testing"

	"github.com/tmwangi/shuledesk/core/academics"
	testutil "github.com/tmwangi/shuledesk/tests"
)

func TestUpsertAttendanceReplacesSameDay(t *testing.T) {
	db := newTestDB(t)
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, NewClassRepository(db), "Grade 4", teacher.ID)
	student := testutil.CreateStudent(t, NewStudentRepository(db), "Bob Otieno", "ADM20260001", class.ID, 0)
	repo := NewAcademicsRepository(db)

	mark := func(id, date string, status academics.AttendanceStatus) academics.Attendance {
		t.Helper()
		a, err := repo.UpsertAttendance(academics.Attendance{
			ID:        id,
			StudentID: student.ID,
			ClassID:   class.ID,
			Date:      date,
			Status:    status,
			MarkedBy:  teacher.ID,
		})
		if err != nil {
			t.Fatalf("UpsertAttendance() failed: %v", err)
		}
		return a
	}

	mark("a1", "2026-08-24", academics.AttendancePresent)
	// correcting the same day edits in place; the new record's id wins
	mark("a2", "2026-08-24", academics.AttendanceAbsent)
	mark("a3", "2026-08-25", academics.AttendancePresent)

	records, err := repo.QueryAttendanceByStudent(student.ID)
	if err != nil {
		t.Fatalf("QueryAttendanceByStudent() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records; want 2", len(records))
	}
	if records[0].ID != "a2" || records[0].Status != academics.AttendanceAbsent {
		t.Errorf("day 1 record = %+v; want id a2 with status ABSENT", records[0])
	}

	byDay, err := repo.QueryAttendanceByClass(class.ID, "2026-08-25")
	if err != nil {
		t.Fatalf("QueryAttendanceByClass() failed: %v", err)
	}
	if len(byDay) != 1 || byDay[0].ID != "a3" {
		t.Errorf("day filter returned %+v; want [a3]", byDay)
	}

	all, err := repo.QueryAttendanceByClass(class.ID, "")
	if err != nil {
		t.Fatalf("QueryAttendanceByClass() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered class query returned %d records; want 2", len(all))
	}
}

func TestUpsertGradeReplacesSameTerm(t *testing.T) {
	db := newTestDB(t)
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, NewClassRepository(db), "Grade 4", teacher.ID)
	student := testutil.CreateStudent(t, NewStudentRepository(db), "Bob Otieno", "ADM20260001", class.ID, 0)
	repo := NewAcademicsRepository(db)

	add := func(id, subject string, score int, term academics.Term) {
		t.Helper()
		if _, err := repo.UpsertGrade(academics.Grade{
			ID:        id,
			StudentID: student.ID,
			ClassID:   class.ID,
			Subject:   subject,
			Grade:     academics.LetterFor(score),
			Score:     score,
			MaxScore:  100,
			Term:      term,
			Year:      2026,
			TeacherID: teacher.ID,
		}); err != nil {
			t.Fatalf("UpsertGrade() failed: %v", err)
		}
	}

	add("g1", "Mathematics", 55, academics.Term1)
	// a re-submission for the same (student, subject, term, year) replaces
	add("g2", "Mathematics", 85, academics.Term1)
	add("g3", "Mathematics", 70, academics.Term2)
	add("g4", "English", 60, academics.Term1)

	grades, err := repo.QueryGradesByStudent(student.ID)
	if err != nil {
		t.Fatalf("QueryGradesByStudent() failed: %v", err)
	}
	if len(grades) != 3 {
		t.Fatalf("got %d grades; want 3", len(grades))
	}
	if grades[0].ID != "g2" || grades[0].Score != 85 || grades[0].Grade != "A" {
		t.Errorf("replaced grade = %+v; want id g2, score 85, letter A", grades[0])
	}

	maths, err := repo.QueryGradesByClass(class.ID, "Mathematics")
	if err != nil {
		t.Fatalf("QueryGradesByClass() failed: %v", err)
	}
	if len(maths) != 2 {
		t.Errorf("subject filter returned %d grades; want 2", len(maths))
	}
	all, err := repo.QueryGradesByClass(class.ID, "")
	if err != nil {
		t.Fatalf("QueryGradesByClass() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered class query returned %d grades; want 3", len(all))
	}
}
