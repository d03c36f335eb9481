package school

type TeacherStatus string

const (
	TeacherActive   TeacherStatus = "ACTIVE"
	TeacherInactive TeacherStatus = "INACTIVE"
	TeacherOnLeave  TeacherStatus = "ON_LEAVE"
)

type ClassType string

const (
	ClassPrimary   ClassType = "PRIMARY"
	ClassSecondary ClassType = "SECONDARY"
)

type BoardingStatus string

const (
	StudentDay      BoardingStatus = "DAY"
	StudentBoarding BoardingStatus = "BOARDING"
)

type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentInactive  StudentStatus = "INACTIVE"
	StudentSuspended StudentStatus = "SUSPENDED"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type Teacher struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Subjects []string `json:"subjects"`
	// AssignedClasses is the source of truth for teacher→class assignment;
	// Class.TeacherID is the reverse pointer and must agree.
	AssignedClasses  []string      `json:"assigned_classes"`
	Status           TeacherStatus `json:"status"`
	DateOfJoining    string        `json:"date_of_joining"`
	EmployeeID       string        `json:"employee_id"`
	Qualifications   string        `json:"qualifications"`
	Address          string        `json:"address"`
	EmergencyContact string        `json:"emergency_contact"`
}

type Class struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TeacherID string    `json:"teacher_id"`
	Type      ClassType `json:"type"`
	Capacity  int       `json:"capacity"`
	// StudentCount is derived: it is computed at query time from the student
	// table and never stored, so it stays exact across enrollment changes.
	StudentCount int      `json:"student_count"`
	Room         string   `json:"room"`
	Subjects     []string `json:"subjects"`
}

type Student struct {
	ID               string         `json:"id"`
	AdmissionNo      string         `json:"admission_no"`
	Name             string         `json:"name"`
	ClassID          string         `json:"class_id"`
	BoardingStatus   BoardingStatus `json:"boarding_status"`
	Status           StudentStatus  `json:"status"`
	ParentName       string         `json:"parent_name"`
	ParentContact    string         `json:"parent_contact"`
	ParentEmail      string         `json:"parent_email"`
	DateOfBirth      string         `json:"date_of_birth"`
	Gender           Gender         `json:"gender"`
	Address          string         `json:"address"`
	EmergencyContact string         `json:"emergency_contact"`
	MedicalInfo      string         `json:"medical_info,omitempty"`
	EnrollmentDate   string         `json:"enrollment_date"`
	// FeeBalance only decreases, via completed payments, and is floored at 0.
	FeeBalance int `json:"fee_balance"`
}
