package inmemdb

import (
	"github.com/tmwangi/shuledesk/core/academics"
)

type academicsRepository struct {
	db *DB
}

var _ academics.Repository = (*academicsRepository)(nil) // interface compliance check

func NewAcademicsRepository(db *DB) academics.Repository {
	return &academicsRepository{db: db}
}

func (repo *academicsRepository) UpsertAttendance(a academics.Attendance) (academics.Attendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// replace in place on natural-key match; the new record's id wins
	for i, orig := range repo.db.attendance {
		if orig.StudentID == a.StudentID && orig.ClassID == a.ClassID && orig.Date == a.Date {
			repo.db.attendance[i] = &a
			repo.db.save()
			return a, nil
		}
	}
	repo.db.attendance = append(repo.db.attendance, &a)
	repo.db.save()
	return a, nil
}

func (repo *academicsRepository) QueryAllAttendance() ([]academics.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	records := make([]academics.Attendance, 0, len(repo.db.attendance))
	for _, a := range repo.db.attendance {
		records = append(records, *a)
	}
	return records, nil
}

func (repo *academicsRepository) QueryAttendanceByClass(classID, date string) ([]academics.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	records := make([]academics.Attendance, 0, len(repo.db.attendance))
	for _, a := range repo.db.attendance {
		if a.ClassID == classID && (date == "" || a.Date == date) {
			records = append(records, *a)
		}
	}
	return records, nil
}

func (repo *academicsRepository) QueryAttendanceByStudent(studentID string) ([]academics.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	records := make([]academics.Attendance, 0, len(repo.db.attendance))
	for _, a := range repo.db.attendance {
		if a.StudentID == studentID {
			records = append(records, *a)
		}
	}
	return records, nil
}

func (repo *academicsRepository) UpsertGrade(g academics.Grade) (academics.Grade, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, orig := range repo.db.grades {
		if orig.StudentID == g.StudentID && orig.Subject == g.Subject && orig.Term == g.Term && orig.Year == g.Year {
			repo.db.grades[i] = &g
			repo.db.save()
			return g, nil
		}
	}
	repo.db.grades = append(repo.db.grades, &g)
	repo.db.save()
	return g, nil
}

func (repo *academicsRepository) QueryAllGrades() ([]academics.Grade, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	grades := make([]academics.Grade, 0, len(repo.db.grades))
	for _, g := range repo.db.grades {
		grades = append(grades, *g)
	}
	return grades, nil
}

func (repo *academicsRepository) QueryGradesByStudent(studentID string) ([]academics.Grade, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	grades := make([]academics.Grade, 0, len(repo.db.grades))
	for _, g := range repo.db.grades {
		if g.StudentID == studentID {
			grades = append(grades, *g)
		}
	}
	return grades, nil
}

func (repo *academicsRepository) QueryGradesByClass(classID, subject string) ([]academics.Grade, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	grades := make([]academics.Grade, 0, len(repo.db.grades))
	for _, g := range repo.db.grades {
		if g.ClassID == classID && (subject == "" || g.Subject == subject) {
			grades = append(grades, *g)
		}
	}
	return grades, nil
}
