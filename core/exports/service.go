package exports

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/audit"
)

var ErrNotFound = core.NewNotFoundError("export request")

type (
	Repository interface {
		CreateExport(e ExportRequest) (ExportRequest, error)
		QueryAllExports() ([]ExportRequest, error)
		GetExportByID(id string) (ExportRequest, error)
		// ApproveExport transitions PENDING → APPROVED atomically; any other
		// starting state fails with an invalid-transition error and leaves
		// the record untouched.
		ApproveExport(id, approvedBy string, completedAt time.Time) (ExportRequest, error)
		// RejectExport transitions PENDING → REJECTED atomically. No
		// CompletedAt is set.
		RejectExport(id, reason string) (ExportRequest, error)
	}

	Service struct {
		repo      Repository
		mailSvc   core.EmailService
		directory audit.Directory
		conf      *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, directory audit.Directory, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, directory: directory, conf: conf}
}

// NewExport contains information needed to request a data export.
type NewExport struct {
	DataType      DataType   `json:"data_type" validate:"required,oneof=STUDENT_RECORDS FEE_RECORDS ATTENDANCE_RECORDS GRADE_RECORDS FULL_REPORT"`
	Format        Format     `json:"format" validate:"required,oneof=PDF EXCEL CSV"`
	StudentID     string     `json:"student_id"`
	ClassID       string     `json:"class_id"`
	DateRange     *DateRange `json:"date_range"`
	Justification string     `json:"justification" validate:"required"`
}

func (ne *NewExport) Validate(validate *validator.Validate) error {
	ne.Justification = core.CleanString(ne.Justification)
	return validate.Struct(ne)
}

// Create starts a new export request in PENDING.
func (svc *Service) Create(id string, ne NewExport, requestedBy string) (ExportRequest, error) {
	e := ExportRequest{
		ID:            id,
		RequestedBy:   requestedBy,
		DataType:      ne.DataType,
		Format:        ne.Format,
		Status:        StatusPending,
		StudentID:     ne.StudentID,
		ClassID:       ne.ClassID,
		DateRange:     ne.DateRange,
		Justification: ne.Justification,
		CreatedAt:     time.Now().UTC(),
	}
	return svc.repo.CreateExport(e)
}

func (svc *Service) QueryAll() ([]ExportRequest, error) {
	return svc.repo.QueryAllExports()
}

func (svc *Service) GetByID(id string) (ExportRequest, error) {
	return svc.repo.GetExportByID(id)
}

// Approve transitions the request to APPROVED, records the approver and
// completion time, and notifies the requester.
func (svc *Service) Approve(id string, approver audit.Actor) (ExportRequest, error) {
	e, err := svc.repo.ApproveExport(id, approver.ID, time.Now().UTC())
	if err != nil {
		return ExportRequest{}, err
	}
	svc.notify(e, fmt.Sprintf(
		"Your %s export request has been approved by %s. "+
			"You can download it from %s/dashboard/admin/exports/%s.",
		e.DataType, approver.Name, svc.conf.FrontendBaseURL, e.ID,
	))
	return e, nil
}

// Reject transitions the request to REJECTED with a non-empty reason and
// notifies the requester. ApprovedBy and CompletedAt are left unset.
func (svc *Service) Reject(id, reason string) (ExportRequest, error) {
	reason = core.CleanString(reason)
	if reason == "" {
		return ExportRequest{}, core.NewValidationError(
			errors.New("a rejection reason is required"),
			core.FieldError{Field: "rejection_reason", Error: "this field is required"},
		)
	}
	e, err := svc.repo.RejectExport(id, reason)
	if err != nil {
		return ExportRequest{}, err
	}
	svc.notify(e, fmt.Sprintf(
		"Your %s export request has been rejected: %s", e.DataType, reason,
	))
	return e, nil
}

func (svc *Service) notify(e ExportRequest, body string) {
	if svc.mailSvc == nil || svc.directory == nil {
		return
	}
	requester, ok := svc.directory.GetActor(e.RequestedBy)
	if !ok || requester.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: requester.Name, Address: requester.Email}},
		Subject: "Export request " + string(e.Status),
		BodyStr: body,
	})
}
