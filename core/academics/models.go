package academics

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

type Term string

const (
	Term1 Term = "TERM_1"
	Term2 Term = "TERM_2"
	Term3 Term = "TERM_3"
)

// Attendance records one student's status for one class on one calendar day.
// Natural key = (StudentID, ClassID, Date): at most one record per key.
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	ClassID   string           `json:"class_id"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	MarkedBy  string           `json:"marked_by"`
	Notes     string           `json:"notes,omitempty"`
}

// Grade records one student's score for one subject in one term of one year.
// Natural key = (StudentID, Subject, Term, Year); upserts replace the prior
// score and comment for the same key.
type Grade struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Subject   string    `json:"subject"`
	Grade     string    `json:"grade"` // letter, derived from Score
	Score     int       `json:"score"`
	MaxScore  int       `json:"max_score"`
	Term      Term      `json:"term"`
	Year      int       `json:"year"`
	Comment   string    `json:"comment,omitempty"`
	TeacherID string    `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// LetterFor derives the letter grade for a score.
func LetterFor(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "E"
	}
}
