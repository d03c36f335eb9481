package finance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/school"
)

var ErrPaymentNotFound = core.NewNotFoundError("payment")

type (
	Repository interface {
		CheckReceiptNoUniqueness(receiptNo string) error
		// CreatePayment appends the payment and, when its status is
		// COMPLETED, decrements the student's fee balance by the amount,
		// floored at 0, in the same atomic step. No reader may observe the
		// payment without the balance adjustment.
		CreatePayment(p Payment) (Payment, school.Student, error)
		QueryAllPayments() ([]Payment, error)
		GetPaymentByID(id string) (Payment, error)
		QueryPaymentsByStudent(studentID string) ([]Payment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewPayment contains information needed to record a new Payment.
type NewPayment struct {
	StudentID   string        `json:"student_id" validate:"required"`
	Amount      int           `json:"amount" validate:"required,gt=0"`
	Method      PaymentMethod `json:"method" validate:"required,oneof=CASH MPESA BANK_TRANSFER CHEQUE"`
	Status      PaymentStatus `json:"status" validate:"required,oneof=COMPLETED PENDING FAILED"`
	ReceiptNo   string        `json:"receipt_no" validate:"required"`
	Description string        `json:"description"`
}

func (np *NewPayment) Validate(validate *validator.Validate, svc *Service) error {
	np.ReceiptNo = core.CleanString(np.ReceiptNo)
	np.Description = core.CleanString(np.Description)

	if err := validate.Struct(np); err != nil {
		return err
	}
	return svc.repo.CheckReceiptNoUniqueness(np.ReceiptNo)
}

// Record appends the payment and applies the fee-balance decrement as one
// operation. It returns the payment and the student as of after the call.
func (svc *Service) Record(id string, np NewPayment, recordedBy string) (Payment, school.Student, error) {
	p := Payment{
		ID:          id,
		StudentID:   np.StudentID,
		Amount:      np.Amount,
		Method:      np.Method,
		Status:      np.Status,
		Date:        time.Now().UTC(),
		ReceiptNo:   np.ReceiptNo,
		Description: np.Description,
		RecordedBy:  recordedBy,
	}
	return svc.repo.CreatePayment(p)
}

func (svc *Service) QueryAll() ([]Payment, error) {
	return svc.repo.QueryAllPayments()
}

func (svc *Service) GetByID(id string) (Payment, error) {
	return svc.repo.GetPaymentByID(id)
}

func (svc *Service) QueryByStudent(studentID string) ([]Payment, error) {
	return svc.repo.QueryPaymentsByStudent(studentID)
}

// TotalPaidByStudent sums the student's completed payments.
func (svc *Service) TotalPaidByStudent(studentID string) (int, error) {
	payments, err := svc.repo.QueryPaymentsByStudent(studentID)
	if err != nil {
		return 0, err
	}
	var total int
	for _, p := range payments {
		if p.Status == PaymentCompleted {
			total += p.Amount
		}
	}
	return total, nil
}
