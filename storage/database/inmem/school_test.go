package inmemdb

import (
	"testing"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/school"
	testutil "github.com/tmwangi/shuledesk/tests"
)

func TestCreateTeacherDuplicateEmployeeID(t *testing.T) {
	db := newTestDB(t)
	repo := NewTeacherRepository(db)

	testutil.CreateTeacher(t, repo, "Alice Wanjiru", "EMP0001")

	_, err := repo.CreateTeacher(school.Teacher{ID: "t2", Name: "Eve Njeri", EmployeeID: "EMP0001"})
	if dup, ok := err.(*core.DuplicateKeyError); !ok {
		t.Fatalf("CreateTeacher() error = %v; want DuplicateKeyError", err)
	} else if dup.Field != "employee_id" {
		t.Errorf("Field = %q; want %q", dup.Field, "employee_id")
	}

	if err = repo.CheckEmployeeIDUniqueness("EMP0001"); err == nil {
		t.Error("CheckEmployeeIDUniqueness() passed for a taken employee_id")
	}
	if err = repo.CheckEmployeeIDUniqueness("EMP0002"); err != nil {
		t.Errorf("CheckEmployeeIDUniqueness() failed for a free employee_id: %v", err)
	}
}

func TestCreateStudentDuplicateAdmissionNo(t *testing.T) {
	db := newTestDB(t)
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, NewClassRepository(db), "Grade 4", teacher.ID)
	repo := NewStudentRepository(db)

	testutil.CreateStudent(t, repo, "Bob Otieno", "ADM20260001", class.ID, 0)

	_, err := repo.CreateStudent(school.Student{ID: "s2", Name: "Carol Achieng", AdmissionNo: "ADM20260001", ClassID: class.ID})
	if _, ok := err.(*core.DuplicateKeyError); !ok {
		t.Fatalf("CreateStudent() error = %v; want DuplicateKeyError", err)
	}
}

func TestStudentCountIsDerived(t *testing.T) {
	db := newTestDB(t)
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	classRepo := NewClassRepository(db)
	studentRepo := NewStudentRepository(db)

	c1 := testutil.CreateClass(t, classRepo, "Grade 4", teacher.ID)
	c2 := testutil.CreateClass(t, classRepo, "Grade 5", teacher.ID)
	s1 := testutil.CreateStudent(t, studentRepo, "Bob Otieno", "ADM20260001", c1.ID, 0)
	testutil.CreateStudent(t, studentRepo, "Carol Achieng", "ADM20260002", c1.ID, 0)

	assertCount := func(classID string, want int) {
		t.Helper()
		c, err := classRepo.GetClassByID(classID)
		if err != nil {
			t.Fatalf("GetClassByID() failed: %v", err)
		}
		if c.StudentCount != want {
			t.Errorf("StudentCount = %d; want %d", c.StudentCount, want)
		}
	}

	assertCount(c1.ID, 2)
	assertCount(c2.ID, 0)

	// moving a student between classes moves the count with it
	if _, err := studentRepo.UpdateStudent(s1.ID, school.UpdateStudent{ClassID: &c2.ID}); err != nil {
		t.Fatalf("UpdateStudent() failed: %v", err)
	}
	assertCount(c1.ID, 1)
	assertCount(c2.ID, 1)

	if err := studentRepo.DeleteStudent(s1.ID); err != nil {
		t.Fatalf("DeleteStudent() failed: %v", err)
	}
	assertCount(c2.ID, 0)
}

func TestClassAssignmentStaysInAgreement(t *testing.T) {
	db := newTestDB(t)
	teacherRepo := NewTeacherRepository(db)
	classRepo := NewClassRepository(db)

	t1 := testutil.CreateTeacher(t, teacherRepo, "Alice Wanjiru", "EMP0001")
	t2 := testutil.CreateTeacher(t, teacherRepo, "Eve Njeri", "EMP0002")
	class := testutil.CreateClass(t, classRepo, "Grade 4", t1.ID)

	assigned := func(teacherID string) []string {
		t.Helper()
		teacher, err := teacherRepo.GetTeacherByID(teacherID)
		if err != nil {
			t.Fatalf("GetTeacherByID() failed: %v", err)
		}
		return teacher.AssignedClasses
	}

	if got := assigned(t1.ID); len(got) != 1 || got[0] != class.ID {
		t.Fatalf("AssignedClasses = %v; want [%s]", got, class.ID)
	}

	// reassignment moves the class id between both teachers' lists
	if _, err := classRepo.UpdateClass(class.ID, school.UpdateClass{TeacherID: &t2.ID}); err != nil {
		t.Fatalf("UpdateClass() failed: %v", err)
	}
	if got := assigned(t1.ID); len(got) != 0 {
		t.Errorf("previous teacher still assigned: %v", got)
	}
	if got := assigned(t2.ID); len(got) != 1 || got[0] != class.ID {
		t.Errorf("AssignedClasses = %v; want [%s]", got, class.ID)
	}

	if err := classRepo.DeleteClass(class.ID); err != nil {
		t.Fatalf("DeleteClass() failed: %v", err)
	}
	if got := assigned(t2.ID); len(got) != 0 {
		t.Errorf("deleted class still assigned: %v", got)
	}
}

func TestDeleteClassRestrictedWhileStudentsEnrolled(t *testing.T) {
	db := newTestDB(t)
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	classRepo := NewClassRepository(db)
	studentRepo := NewStudentRepository(db)

	class := testutil.CreateClass(t, classRepo, "Grade 4", teacher.ID)
	student := testutil.CreateStudent(t, studentRepo, "Bob Otieno", "ADM20260001", class.ID, 0)

	if err := classRepo.DeleteClass(class.ID); err != school.ErrClassHasStudents {
		t.Fatalf("DeleteClass() error = %v; want ErrClassHasStudents", err)
	}

	if err := studentRepo.DeleteStudent(student.ID); err != nil {
		t.Fatalf("DeleteStudent() failed: %v", err)
	}
	if err := classRepo.DeleteClass(class.ID); err != nil {
		t.Fatalf("DeleteClass() failed after unenrollment: %v", err)
	}
	if err := classRepo.DeleteClass(class.ID); err != school.ErrClassNotFound {
		t.Errorf("second DeleteClass() error = %v; want ErrClassNotFound", err)
	}
}

func TestDeleteTeacherClearsReversePointers(t *testing.T) {
	db := newTestDB(t)
	teacherRepo := NewTeacherRepository(db)
	classRepo := NewClassRepository(db)

	teacher := testutil.CreateTeacher(t, teacherRepo, "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, classRepo, "Grade 4", teacher.ID)

	if err := teacherRepo.DeleteTeacher(teacher.ID); err != nil {
		t.Fatalf("DeleteTeacher() failed: %v", err)
	}
	c, err := classRepo.GetClassByID(class.ID)
	if err != nil {
		t.Fatalf("GetClassByID() failed: %v", err)
	}
	if c.TeacherID != "" {
		t.Errorf("TeacherID = %q; want cleared", c.TeacherID)
	}
	if err = teacherRepo.DeleteTeacher(teacher.ID); err != school.ErrTeacherNotFound {
		t.Errorf("second DeleteTeacher() error = %v; want ErrTeacherNotFound", err)
	}
}

func TestReturnedRecordsDetachedFromStore(t *testing.T) {
	db := newTestDB(t)
	teacherRepo := NewTeacherRepository(db)
	classRepo := NewClassRepository(db)

	teacher := testutil.CreateTeacher(t, teacherRepo, "Alice Wanjiru", "EMP0001")
	c1 := testutil.CreateClass(t, classRepo, "Grade 4", teacher.ID)
	c2 := testutil.CreateClass(t, classRepo, "Grade 5", teacher.ID)

	before, err := teacherRepo.GetTeacherByID(teacher.ID)
	if err != nil {
		t.Fatalf("GetTeacherByID() failed: %v", err)
	}
	if len(before.AssignedClasses) != 2 {
		t.Fatalf("AssignedClasses = %v; want [%s %s]", before.AssignedClasses, c1.ID, c2.ID)
	}

	// unassigning c1 must not reach into copies handed out earlier
	if err = classRepo.DeleteClass(c1.ID); err != nil {
		t.Fatalf("DeleteClass() failed: %v", err)
	}
	if before.AssignedClasses[0] != c1.ID || before.AssignedClasses[1] != c2.ID {
		t.Errorf("previously fetched copy mutated: %v; want [%s %s]", before.AssignedClasses, c1.ID, c2.ID)
	}

	// nor may the caller's slices reach into the store
	subjects := []string{"Mathematics", "Physics"}
	if _, err = teacherRepo.UpdateTeacher(teacher.ID, school.UpdateTeacher{Subjects: subjects}); err != nil {
		t.Fatalf("UpdateTeacher() failed: %v", err)
	}
	subjects[0] = "History"
	got, err := teacherRepo.GetTeacherByID(teacher.ID)
	if err != nil {
		t.Fatalf("GetTeacherByID() failed: %v", err)
	}
	if got.Subjects[0] != "Mathematics" {
		t.Errorf("Subjects = %v; caller's slice leaked into the store", got.Subjects)
	}
}

func TestQueryStudentsByClassEmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudentRepository(db)

	// empty results still serialize as [] rather than null
	students, err := repo.QueryStudentsByClass("no-such-class")
	if err != nil {
		t.Fatalf("QueryStudentsByClass() failed: %v", err)
	}
	if students == nil {
		t.Error("QueryStudentsByClass() = nil; want an empty slice")
	}
}

func TestUpdateStudentOnlySavesSetFields(t *testing.T) {
	db := newTestDB(t)
	teacher := testutil.CreateTeacher(t, NewTeacherRepository(db), "Alice Wanjiru", "EMP0001")
	class := testutil.CreateClass(t, NewClassRepository(db), "Grade 4", teacher.ID)
	repo := NewStudentRepository(db)

	student := testutil.CreateStudent(t, repo, "Bob Otieno", "ADM20260001", class.ID, 5000)

	name := "Robert Otieno"
	got, err := repo.UpdateStudent(student.ID, school.UpdateStudent{Name: &name})
	if err != nil {
		t.Fatalf("UpdateStudent() failed: %v", err)
	}
	if got.Name != name {
		t.Errorf("Name = %q; want %q", got.Name, name)
	}
	if got.AdmissionNo != student.AdmissionNo || got.ClassID != student.ClassID || got.FeeBalance != 5000 {
		t.Errorf("unset fields changed: %+v", got)
	}
}
