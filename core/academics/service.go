package academics

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/school"
)

var ErrGradeNotFound = core.NewNotFoundError("grade")

type (
	Repository interface {
		// UpsertAttendance replaces the record matching the natural key
		// (StudentID, ClassID, Date) or appends a new one. The submitted
		// record's own id is authoritative.
		UpsertAttendance(a Attendance) (Attendance, error)
		QueryAllAttendance() ([]Attendance, error)
		// QueryAttendanceByClass filters by class and, when date is non-empty,
		// by exact day match.
		QueryAttendanceByClass(classID, date string) ([]Attendance, error)
		QueryAttendanceByStudent(studentID string) ([]Attendance, error)

		// UpsertGrade replaces the record matching the natural key
		// (StudentID, Subject, Term, Year) or appends a new one.
		UpsertGrade(g Grade) (Grade, error)
		QueryAllGrades() ([]Grade, error)
		QueryGradesByStudent(studentID string) ([]Grade, error)
		// QueryGradesByClass filters by class and, when subject is non-empty,
		// by exact subject match.
		QueryGradesByClass(classID, subject string) ([]Grade, error)
	}

	Service struct {
		repo     Repository
		students school.StudentRepository
		classes  school.ClassRepository
	}
)

func NewService(repo Repository, students school.StudentRepository, classes school.ClassRepository) *Service {
	return &Service{repo: repo, students: students, classes: classes}
}

// MarkAttendance contains information needed to mark one student's attendance.
type MarkAttendance struct {
	StudentID string           `json:"student_id" validate:"required"`
	ClassID   string           `json:"class_id" validate:"required"`
	Date      string           `json:"date" validate:"required,day"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Notes     string           `json:"notes"`
}

func (ma *MarkAttendance) Validate(validate *validator.Validate) error {
	ma.Notes = core.CleanString(ma.Notes)
	return validate.Struct(ma)
}

// AddGrade contains information needed to record one student's grade.
// The score range is validated here: out-of-range submissions are rejected
// rather than clamped.
type AddGrade struct {
	StudentID string `json:"student_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Score     int    `json:"score" validate:"min=0,max=100"`
	Term      Term   `json:"term" validate:"required,oneof=TERM_1 TERM_2 TERM_3"`
	Year      int    `json:"year" validate:"required,min=2000,max=2100"`
	Comment   string `json:"comment"`
}

func (ag *AddGrade) Validate(validate *validator.Validate) error {
	ag.Subject = core.CleanString(ag.Subject)
	ag.Comment = core.CleanString(ag.Comment)
	return validate.Struct(ag)
}

// Mark upserts the attendance record keyed by (student, class, day).
// markedBy records the acting identity for audit attribution.
func (svc *Service) Mark(id string, ma MarkAttendance, markedBy string) (Attendance, error) {
	if _, err := svc.students.GetStudentByID(ma.StudentID); err != nil {
		return Attendance{}, err
	}
	if _, err := svc.classes.GetClassByID(ma.ClassID); err != nil {
		return Attendance{}, err
	}
	a := Attendance{
		ID:        id,
		StudentID: ma.StudentID,
		ClassID:   ma.ClassID,
		Date:      ma.Date,
		Status:    ma.Status,
		MarkedBy:  markedBy,
		Notes:     ma.Notes,
	}
	return svc.repo.UpsertAttendance(a)
}

func (svc *Service) AllAttendance() ([]Attendance, error) {
	return svc.repo.QueryAllAttendance()
}

func (svc *Service) AttendanceByClass(classID, date string) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByClass(classID, date)
}

func (svc *Service) AttendanceByStudent(studentID string) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByStudent(studentID)
}

// AddGrade upserts the grade record keyed by (student, subject, term, year)
// and derives the letter grade from the score.
func (svc *Service) AddGrade(id string, ag AddGrade, teacherID string) (Grade, error) {
	if _, err := svc.students.GetStudentByID(ag.StudentID); err != nil {
		return Grade{}, err
	}
	if _, err := svc.classes.GetClassByID(ag.ClassID); err != nil {
		return Grade{}, err
	}
	g := Grade{
		ID:        id,
		StudentID: ag.StudentID,
		ClassID:   ag.ClassID,
		Subject:   ag.Subject,
		Grade:     LetterFor(ag.Score),
		Score:     ag.Score,
		MaxScore:  100,
		Term:      ag.Term,
		Year:      ag.Year,
		Comment:   ag.Comment,
		TeacherID: teacherID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.UpsertGrade(g)
}

func (svc *Service) AllGrades() ([]Grade, error) {
	return svc.repo.QueryAllGrades()
}

func (svc *Service) GradesByStudent(studentID string) ([]Grade, error) {
	return svc.repo.QueryGradesByStudent(studentID)
}

func (svc *Service) GradesByClass(classID, subject string) ([]Grade, error) {
	return svc.repo.QueryGradesByClass(classID, subject)
}
