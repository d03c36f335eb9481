package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/tmwangi/shuledesk/core"
)

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name             string        `json:"name" validate:"required"`
	Email            string        `json:"email" validate:"required,email"`
	Phone            string        `json:"phone" validate:"required"`
	Subjects         []string      `json:"subjects" validate:"required,min=1,dive,required"`
	Status           TeacherStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE ON_LEAVE"`
	DateOfJoining    string        `json:"date_of_joining" validate:"required,day"`
	EmployeeID       string        `json:"employee_id" validate:"required"`
	Qualifications   string        `json:"qualifications"`
	Address          string        `json:"address"`
	EmergencyContact string        `json:"emergency_contact"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate, svc *Service) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.EmployeeID = core.CleanString(nt.EmployeeID)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckEmployeeIDUniqueness(nt.EmployeeID)
}

// UpdateTeacher defines what information may be provided to modify an existing
// Teacher. Nil fields are left untouched. AssignedClasses is not updatable
// here: it is maintained by class create/update/delete.
type UpdateTeacher struct {
	Name             *string        `json:"name" validate:"omitempty,min=1"`
	Email            *string        `json:"email" validate:"omitempty,email"`
	Phone            *string        `json:"phone" validate:"omitempty,min=1"`
	Subjects         []string       `json:"subjects" validate:"omitempty,min=1,dive,required"`
	Status           *TeacherStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE"`
	DateOfJoining    *string        `json:"date_of_joining" validate:"omitempty,day"`
	EmployeeID       *string        `json:"employee_id" validate:"omitempty,min=1"`
	Qualifications   *string        `json:"qualifications"`
	Address          *string        `json:"address"`
	EmergencyContact *string        `json:"emergency_contact"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate, svc *Service, orig Teacher) error {
	if ut.Name != nil {
		*ut.Name = core.CleanString(*ut.Name)
	}
	if ut.Email != nil {
		*ut.Email = core.CleanString(*ut.Email, true /* lower */)
	}
	if ut.EmployeeID != nil {
		*ut.EmployeeID = core.CleanString(*ut.EmployeeID)
	}

	if err := validate.Struct(ut); err != nil {
		return err
	}
	if ut.EmployeeID != nil && *ut.EmployeeID != orig.EmployeeID {
		return svc.CheckEmployeeIDUniqueness(*ut.EmployeeID)
	}
	return nil
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name      string    `json:"name" validate:"required"`
	TeacherID string    `json:"teacher_id" validate:"required"`
	Type      ClassType `json:"type" validate:"required,oneof=PRIMARY SECONDARY"`
	Capacity  int       `json:"capacity" validate:"required,gt=0"`
	Room      string    `json:"room" validate:"required"`
	Subjects  []string  `json:"subjects" validate:"required,min=1,dive,required"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Room = core.CleanString(nc.Room)
	return validate.Struct(nc)
}

// UpdateClass defines what information may be provided to modify an existing
// Class. Setting TeacherID reassigns the class: both the old and the new
// teacher's AssignedClasses are kept in agreement.
type UpdateClass struct {
	Name      *string    `json:"name" validate:"omitempty,min=1"`
	TeacherID *string    `json:"teacher_id" validate:"omitempty,min=1"`
	Type      *ClassType `json:"type" validate:"omitempty,oneof=PRIMARY SECONDARY"`
	Capacity  *int       `json:"capacity" validate:"omitempty,gt=0"`
	Room      *string    `json:"room" validate:"omitempty,min=1"`
	Subjects  []string   `json:"subjects" validate:"omitempty,min=1,dive,required"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	if uc.Name != nil {
		*uc.Name = core.CleanString(*uc.Name)
	}
	if uc.Room != nil {
		*uc.Room = core.CleanString(*uc.Room)
	}
	return validate.Struct(uc)
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	AdmissionNo      string         `json:"admission_no" validate:"required"`
	Name             string         `json:"name" validate:"required"`
	ClassID          string         `json:"class_id" validate:"required"`
	BoardingStatus   BoardingStatus `json:"boarding_status" validate:"required,oneof=DAY BOARDING"`
	Status           StudentStatus  `json:"status" validate:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
	ParentName       string         `json:"parent_name" validate:"required"`
	ParentContact    string         `json:"parent_contact" validate:"required"`
	ParentEmail      string         `json:"parent_email" validate:"omitempty,email"`
	DateOfBirth      string         `json:"date_of_birth" validate:"required,day"`
	Gender           Gender         `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Address          string         `json:"address"`
	EmergencyContact string         `json:"emergency_contact"`
	MedicalInfo      string         `json:"medical_info"`
	EnrollmentDate   string         `json:"enrollment_date" validate:"required,day"`
	FeeBalance       int            `json:"fee_balance" validate:"min=0"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.AdmissionNo = core.CleanString(ns.AdmissionNo)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckAdmissionNoUniqueness(ns.AdmissionNo)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Nil fields are left untouched. FeeBalance is not updatable here:
// it only changes through the payment protocol.
type UpdateStudent struct {
	AdmissionNo      *string         `json:"admission_no" validate:"omitempty,min=1"`
	Name             *string         `json:"name" validate:"omitempty,min=1"`
	ClassID          *string         `json:"class_id" validate:"omitempty,min=1"`
	BoardingStatus   *BoardingStatus `json:"boarding_status" validate:"omitempty,oneof=DAY BOARDING"`
	Status           *StudentStatus  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
	ParentName       *string         `json:"parent_name" validate:"omitempty,min=1"`
	ParentContact    *string         `json:"parent_contact" validate:"omitempty,min=1"`
	ParentEmail      *string         `json:"parent_email" validate:"omitempty,email"`
	DateOfBirth      *string         `json:"date_of_birth" validate:"omitempty,day"`
	Gender           *Gender         `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Address          *string         `json:"address"`
	EmergencyContact *string         `json:"emergency_contact"`
	MedicalInfo      *string         `json:"medical_info"`
	EnrollmentDate   *string         `json:"enrollment_date" validate:"omitempty,day"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, svc *Service, orig Student) error {
	if us.Name != nil {
		*us.Name = core.CleanString(*us.Name)
	}
	if us.AdmissionNo != nil {
		*us.AdmissionNo = core.CleanString(*us.AdmissionNo)
	}
	if us.ParentEmail != nil {
		*us.ParentEmail = core.CleanString(*us.ParentEmail, true /* lower */)
	}

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.AdmissionNo != nil && *us.AdmissionNo != orig.AdmissionNo {
		return svc.CheckAdmissionNoUniqueness(*us.AdmissionNo)
	}
	return nil
}
