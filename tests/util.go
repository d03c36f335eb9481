package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/tmwangi/shuledesk/core/school"
)

func CreateTeacher(t *testing.T, repo school.TeacherRepository, name, employeeID string, subjects ...string) school.Teacher {
	t.Helper()
	if len(subjects) == 0 {
		subjects = []string{"Mathematics"}
	}
	teacher, err := repo.CreateTeacher(school.Teacher{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           fmt.Sprintf("%s@school.com", employeeID),
		Phone:           "+254700000000",
		Subjects:        subjects,
		AssignedClasses: []string{},
		Status:          school.TeacherActive,
		DateOfJoining:   "2021-01-04",
		EmployeeID:      employeeID,
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

func CreateClass(t *testing.T, repo school.ClassRepository, name, teacherID string) school.Class {
	t.Helper()
	class, err := repo.CreateClass(school.Class{
		ID:        uuid.NewString(),
		Name:      name,
		TeacherID: teacherID,
		Type:      school.ClassPrimary,
		Capacity:  40,
		Room:      "R1",
		Subjects:  []string{"Mathematics", "English"},
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return class
}

func CreateStudent(t *testing.T, repo school.StudentRepository, name, admissionNo, classID string, feeBalance int) school.Student {
	t.Helper()
	student, err := repo.CreateStudent(school.Student{
		ID:             uuid.NewString(),
		AdmissionNo:    admissionNo,
		Name:           name,
		ClassID:        classID,
		BoardingStatus: school.StudentDay,
		Status:         school.StudentActive,
		ParentName:     "Jane Doe",
		ParentContact:  "+254711111111",
		DateOfBirth:    "2012-05-14",
		Gender:         school.GenderFemale,
		EnrollmentDate: "2023-01-01",
		FeeBalance:     feeBalance,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}
