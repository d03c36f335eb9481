package school

import (
	"errors"

	"github.com/tmwangi/shuledesk/core"
)

var (
	// errors
	ErrTeacherNotFound = core.NewNotFoundError("teacher")
	ErrClassNotFound   = core.NewNotFoundError("class")
	ErrStudentNotFound = core.NewNotFoundError("student")

	// ErrClassHasStudents is returned when deleting a class that still has
	// enrolled students (deletes are restricted, not cascaded).
	ErrClassHasStudents = errors.New("class still has enrolled students")
)

type (
	TeacherRepository interface {
		CheckEmployeeIDUniqueness(employeeID string) error
		CreateTeacher(t Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		// UpdateTeacher merges only the set fields into the existing record.
		UpdateTeacher(id string, ut UpdateTeacher) (Teacher, error)
		// DeleteTeacher removes the teacher and clears TeacherID on every
		// class that pointed at it, atomically. Dependent attendance, grade
		// and payment rows are kept as historical records.
		DeleteTeacher(id string) error
	}

	ClassRepository interface {
		// CreateClass appends the class and adds its id to the assigned
		// teacher's AssignedClasses in the same atomic step.
		CreateClass(c Class) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id string) (Class, error)
		// UpdateClass merges only the set fields; a TeacherID change moves
		// the class id between the two teachers' AssignedClasses atomically.
		UpdateClass(id string, uc UpdateClass) (Class, error)
		// DeleteClass fails with ErrClassHasStudents while students are
		// enrolled; otherwise it removes the class and drops its id from the
		// assigned teacher's AssignedClasses atomically.
		DeleteClass(id string) error
	}

	StudentRepository interface {
		CheckAdmissionNoUniqueness(admissionNo string) error
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		QueryStudentsByClass(classID string) ([]Student, error)
		// UpdateStudent merges only the set fields into the existing record.
		UpdateStudent(id string, us UpdateStudent) (Student, error)
		// DeleteStudent removes the student; dependent attendance, grade and
		// payment rows are kept as historical records (orphan-tolerant reads).
		DeleteStudent(id string) error
	}

	Service struct {
		teachers TeacherRepository
		classes  ClassRepository
		students StudentRepository
	}
)

func NewService(teachers TeacherRepository, classes ClassRepository, students StudentRepository) *Service {
	return &Service{teachers: teachers, classes: classes, students: students}
}

// Teachers

func (svc *Service) CheckEmployeeIDUniqueness(employeeID string) error {
	return svc.teachers.CheckEmployeeIDUniqueness(employeeID)
}

func (svc *Service) CreateTeacher(id string, nt NewTeacher) (Teacher, error) {
	t := Teacher{
		ID:               id,
		Name:             nt.Name,
		Email:            nt.Email,
		Phone:            nt.Phone,
		Subjects:         nt.Subjects,
		AssignedClasses:  []string{},
		Status:           nt.Status,
		DateOfJoining:    nt.DateOfJoining,
		EmployeeID:       nt.EmployeeID,
		Qualifications:   nt.Qualifications,
		Address:          nt.Address,
		EmergencyContact: nt.EmergencyContact,
	}
	return svc.teachers.CreateTeacher(t)
}

func (svc *Service) QueryAllTeachers() ([]Teacher, error) {
	return svc.teachers.QueryAllTeachers()
}

func (svc *Service) GetTeacherByID(id string) (Teacher, error) {
	return svc.teachers.GetTeacherByID(id)
}

func (svc *Service) UpdateTeacher(id string, ut UpdateTeacher) (Teacher, error) {
	return svc.teachers.UpdateTeacher(id, ut)
}

func (svc *Service) DeleteTeacher(id string) error {
	return svc.teachers.DeleteTeacher(id)
}

// Classes

func (svc *Service) CreateClass(id string, nc NewClass) (Class, error) {
	if _, err := svc.teachers.GetTeacherByID(nc.TeacherID); err != nil {
		return Class{}, err
	}
	c := Class{
		ID:        id,
		Name:      nc.Name,
		TeacherID: nc.TeacherID,
		Type:      nc.Type,
		Capacity:  nc.Capacity,
		Room:      nc.Room,
		Subjects:  nc.Subjects,
	}
	return svc.classes.CreateClass(c)
}

func (svc *Service) QueryAllClasses() ([]Class, error) {
	return svc.classes.QueryAllClasses()
}

func (svc *Service) GetClassByID(id string) (Class, error) {
	return svc.classes.GetClassByID(id)
}

func (svc *Service) UpdateClass(id string, uc UpdateClass) (Class, error) {
	if uc.TeacherID != nil {
		if _, err := svc.teachers.GetTeacherByID(*uc.TeacherID); err != nil {
			return Class{}, err
		}
	}
	return svc.classes.UpdateClass(id, uc)
}

func (svc *Service) DeleteClass(id string) error {
	return svc.classes.DeleteClass(id)
}

// Students

func (svc *Service) CheckAdmissionNoUniqueness(admissionNo string) error {
	return svc.students.CheckAdmissionNoUniqueness(admissionNo)
}

func (svc *Service) CreateStudent(id string, ns NewStudent) (Student, error) {
	if _, err := svc.classes.GetClassByID(ns.ClassID); err != nil {
		return Student{}, err
	}
	s := Student{
		ID:               id,
		AdmissionNo:      ns.AdmissionNo,
		Name:             ns.Name,
		ClassID:          ns.ClassID,
		BoardingStatus:   ns.BoardingStatus,
		Status:           ns.Status,
		ParentName:       ns.ParentName,
		ParentContact:    ns.ParentContact,
		ParentEmail:      ns.ParentEmail,
		DateOfBirth:      ns.DateOfBirth,
		Gender:           ns.Gender,
		Address:          ns.Address,
		EmergencyContact: ns.EmergencyContact,
		MedicalInfo:      ns.MedicalInfo,
		EnrollmentDate:   ns.EnrollmentDate,
		FeeBalance:       ns.FeeBalance,
	}
	return svc.students.CreateStudent(s)
}

func (svc *Service) QueryAllStudents() ([]Student, error) {
	return svc.students.QueryAllStudents()
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	return svc.students.GetStudentByID(id)
}

func (svc *Service) QueryStudentsByClass(classID string) ([]Student, error) {
	return svc.students.QueryStudentsByClass(classID)
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	if us.ClassID != nil {
		if _, err := svc.classes.GetClassByID(*us.ClassID); err != nil {
			return Student{}, err
		}
	}
	return svc.students.UpdateStudent(id, us)
}

func (svc *Service) DeleteStudent(id string) error {
	return svc.students.DeleteStudent(id)
}
