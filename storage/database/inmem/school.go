package inmemdb

import (
	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/school"
)

// Teachers

type teacherRepository struct {
	db *DB
}

var _ school.TeacherRepository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) school.TeacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CheckEmployeeIDUniqueness(employeeID string) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, t := range repo.db.teachers {
		if t.EmployeeID == employeeID {
			return core.NewDuplicateKeyError("employee_id", employeeID)
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(t school.Teacher) (school.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, orig := range repo.db.teachers {
		if orig.EmployeeID == t.EmployeeID {
			return school.Teacher{}, core.NewDuplicateKeyError("employee_id", t.EmployeeID)
		}
	}
	t = copyTeacher(t) // detach from the caller's slices
	repo.db.teachers = append(repo.db.teachers, &t)
	repo.db.save()
	return copyTeacher(t), nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]school.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	teachers := make([]school.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		teachers = append(teachers, copyTeacher(*t))
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id string) (school.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if t := findTeacher(repo.db, id); t != nil {
		return copyTeacher(*t), nil
	}
	return school.Teacher{}, school.ErrTeacherNotFound
}

func (repo *teacherRepository) UpdateTeacher(id string, ut school.UpdateTeacher) (school.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// only save set fields
	orig := findTeacher(repo.db, id)
	if orig == nil {
		return school.Teacher{}, school.ErrTeacherNotFound
	}
	if ut.Name != nil {
		orig.Name = *ut.Name
	}
	if ut.Email != nil {
		orig.Email = *ut.Email
	}
	if ut.Phone != nil {
		orig.Phone = *ut.Phone
	}
	if ut.Subjects != nil {
		orig.Subjects = cloneStrings(ut.Subjects)
	}
	if ut.Status != nil {
		orig.Status = *ut.Status
	}
	if ut.DateOfJoining != nil {
		orig.DateOfJoining = *ut.DateOfJoining
	}
	if ut.EmployeeID != nil {
		orig.EmployeeID = *ut.EmployeeID
	}
	if ut.Qualifications != nil {
		orig.Qualifications = *ut.Qualifications
	}
	if ut.Address != nil {
		orig.Address = *ut.Address
	}
	if ut.EmergencyContact != nil {
		orig.EmergencyContact = *ut.EmergencyContact
	}
	repo.db.save()
	return copyTeacher(*orig), nil
}

func (repo *teacherRepository) DeleteTeacher(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	idx := -1
	for i, t := range repo.db.teachers {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return school.ErrTeacherNotFound
	}
	repo.db.teachers = append(repo.db.teachers[:idx], repo.db.teachers[idx+1:]...)

	// clear the reverse pointers so no class references a missing teacher
	for _, c := range repo.db.classes {
		if c.TeacherID == id {
			c.TeacherID = ""
		}
	}
	repo.db.save()
	return nil
}

// Classes

type classRepository struct {
	db *DB
}

var _ school.ClassRepository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) school.ClassRepository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(c school.Class) (school.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	t := findTeacher(repo.db, c.TeacherID)
	if t == nil {
		return school.Class{}, school.ErrTeacherNotFound
	}
	c = copyClass(c) // detach from the caller's slices
	repo.db.classes = append(repo.db.classes, &c)
	t.AssignedClasses = append(t.AssignedClasses, c.ID)
	repo.db.save()
	return withStudentCount(repo.db, copyClass(c)), nil
}

func (repo *classRepository) QueryAllClasses() ([]school.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	classes := make([]school.Class, 0, len(repo.db.classes))
	for _, c := range repo.db.classes {
		classes = append(classes, withStudentCount(repo.db, copyClass(*c)))
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(id string) (school.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if c := findClass(repo.db, id); c != nil {
		return withStudentCount(repo.db, copyClass(*c)), nil
	}
	return school.Class{}, school.ErrClassNotFound
}

func (repo *classRepository) UpdateClass(id string, uc school.UpdateClass) (school.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// only save set fields
	orig := findClass(repo.db, id)
	if orig == nil {
		return school.Class{}, school.ErrClassNotFound
	}
	if uc.TeacherID != nil && *uc.TeacherID != orig.TeacherID {
		next := findTeacher(repo.db, *uc.TeacherID)
		if next == nil {
			return school.Class{}, school.ErrTeacherNotFound
		}
		// keep both sides of the assignment in agreement
		if prev := findTeacher(repo.db, orig.TeacherID); prev != nil {
			prev.AssignedClasses = removeString(prev.AssignedClasses, id)
		}
		next.AssignedClasses = append(next.AssignedClasses, id)
		orig.TeacherID = *uc.TeacherID
	}
	if uc.Name != nil {
		orig.Name = *uc.Name
	}
	if uc.Type != nil {
		orig.Type = *uc.Type
	}
	if uc.Capacity != nil {
		orig.Capacity = *uc.Capacity
	}
	if uc.Room != nil {
		orig.Room = *uc.Room
	}
	if uc.Subjects != nil {
		orig.Subjects = cloneStrings(uc.Subjects)
	}
	repo.db.save()
	return withStudentCount(repo.db, copyClass(*orig)), nil
}

func (repo *classRepository) DeleteClass(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	idx := -1
	for i, c := range repo.db.classes {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return school.ErrClassNotFound
	}
	if countStudents(repo.db, id) > 0 {
		return school.ErrClassHasStudents
	}

	c := repo.db.classes[idx]
	repo.db.classes = append(repo.db.classes[:idx], repo.db.classes[idx+1:]...)
	if t := findTeacher(repo.db, c.TeacherID); t != nil {
		t.AssignedClasses = removeString(t.AssignedClasses, id)
	}
	repo.db.save()
	return nil
}

// Students

type studentRepository struct {
	db *DB
}

var _ school.StudentRepository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) school.StudentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckAdmissionNoUniqueness(admissionNo string) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, s := range repo.db.students {
		if s.AdmissionNo == admissionNo {
			return core.NewDuplicateKeyError("admission_no", admissionNo)
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(s school.Student) (school.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, orig := range repo.db.students {
		if orig.AdmissionNo == s.AdmissionNo {
			return school.Student{}, core.NewDuplicateKeyError("admission_no", s.AdmissionNo)
		}
	}
	repo.db.students = append(repo.db.students, &s)
	repo.db.save()
	return s, nil
}

func (repo *studentRepository) QueryAllStudents() ([]school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, *s)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if s := findStudent(repo.db, id); s != nil {
		return *s, nil
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *studentRepository) QueryStudentsByClass(classID string) ([]school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		if s.ClassID == classID {
			students = append(students, *s)
		}
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(id string, us school.UpdateStudent) (school.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// only save set fields
	orig := findStudent(repo.db, id)
	if orig == nil {
		return school.Student{}, school.ErrStudentNotFound
	}
	if us.AdmissionNo != nil {
		orig.AdmissionNo = *us.AdmissionNo
	}
	if us.Name != nil {
		orig.Name = *us.Name
	}
	if us.ClassID != nil {
		orig.ClassID = *us.ClassID
	}
	if us.BoardingStatus != nil {
		orig.BoardingStatus = *us.BoardingStatus
	}
	if us.Status != nil {
		orig.Status = *us.Status
	}
	if us.ParentName != nil {
		orig.ParentName = *us.ParentName
	}
	if us.ParentContact != nil {
		orig.ParentContact = *us.ParentContact
	}
	if us.ParentEmail != nil {
		orig.ParentEmail = *us.ParentEmail
	}
	if us.DateOfBirth != nil {
		orig.DateOfBirth = *us.DateOfBirth
	}
	if us.Gender != nil {
		orig.Gender = *us.Gender
	}
	if us.Address != nil {
		orig.Address = *us.Address
	}
	if us.EmergencyContact != nil {
		orig.EmergencyContact = *us.EmergencyContact
	}
	if us.MedicalInfo != nil {
		orig.MedicalInfo = *us.MedicalInfo
	}
	if us.EnrollmentDate != nil {
		orig.EnrollmentDate = *us.EnrollmentDate
	}
	repo.db.save()
	return *orig, nil
}

func (repo *studentRepository) DeleteStudent(id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, s := range repo.db.students {
		if s.ID == id {
			repo.db.students = append(repo.db.students[:i], repo.db.students[i+1:]...)
			repo.db.save()
			return nil
		}
	}
	return school.ErrStudentNotFound
}

// helpers; the caller must hold the lock

func findTeacher(db *DB, id string) *school.Teacher {
	for _, t := range db.teachers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func findClass(db *DB, id string) *school.Class {
	for _, c := range db.classes {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func findStudent(db *DB, id string) *school.Student {
	for _, s := range db.students {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func countStudents(db *DB, classID string) int {
	var n int
	for _, s := range db.students {
		if s.ClassID == classID {
			n++
		}
	}
	return n
}

func withStudentCount(db *DB, c school.Class) school.Class {
	c.StudentCount = countStudents(db, c.ID)
	return c
}

// removeString builds a fresh slice so previously handed-out copies that
// share the old backing array are left untouched.
func removeString(ss []string, s string) []string {
	out := make([]string, 0, len(ss))
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append(make([]string, 0, len(ss)), ss...)
}

// copyTeacher and copyClass detach slice-typed fields, so records handed to
// callers never share backing arrays with the stored ones.
func copyTeacher(t school.Teacher) school.Teacher {
	t.Subjects = cloneStrings(t.Subjects)
	t.AssignedClasses = cloneStrings(t.AssignedClasses)
	return t
}

func copyClass(c school.Class) school.Class {
	c.Subjects = cloneStrings(c.Subjects)
	return c
}
