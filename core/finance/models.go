package finance

import "time"

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodMpesa        PaymentMethod = "MPESA"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment is append-only: no update or delete operation exists.
type Payment struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	Amount      int           `json:"amount"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	Date        time.Time     `json:"date"` // UTC
	ReceiptNo   string        `json:"receipt_no"`
	Description string        `json:"description,omitempty"`
	RecordedBy  string        `json:"recorded_by"`
}
