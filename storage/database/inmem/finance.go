package inmemdb

import (
	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

type paymentRepository struct {
	db *DB
}

var _ finance.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *DB) finance.Repository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) CheckReceiptNoUniqueness(receiptNo string) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, p := range repo.db.payments {
		if p.ReceiptNo == receiptNo {
			return core.NewDuplicateKeyError("receipt_no", receiptNo)
		}
	}
	return nil
}

// CreatePayment appends the payment and applies the fee-balance decrement
// under one critical section, so the two never diverge.
func (repo *paymentRepository) CreatePayment(p finance.Payment) (finance.Payment, school.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s := findStudent(repo.db, p.StudentID)
	if s == nil {
		return finance.Payment{}, school.Student{}, school.ErrStudentNotFound
	}
	for _, orig := range repo.db.payments {
		if orig.ReceiptNo == p.ReceiptNo {
			return finance.Payment{}, school.Student{}, core.NewDuplicateKeyError("receipt_no", p.ReceiptNo)
		}
	}

	repo.db.payments = append(repo.db.payments, &p)
	if p.Status == finance.PaymentCompleted {
		s.FeeBalance -= p.Amount
		if s.FeeBalance < 0 {
			s.FeeBalance = 0 // floored, never negative
		}
	}
	repo.db.save()
	return p, *s, nil
}

func (repo *paymentRepository) QueryAllPayments() ([]finance.Payment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	payments := make([]finance.Payment, 0, len(repo.db.payments))
	for _, p := range repo.db.payments {
		payments = append(payments, *p)
	}
	return payments, nil
}

func (repo *paymentRepository) GetPaymentByID(id string) (finance.Payment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, p := range repo.db.payments {
		if p.ID == id {
			return *p, nil
		}
	}
	return finance.Payment{}, finance.ErrPaymentNotFound
}

func (repo *paymentRepository) QueryPaymentsByStudent(studentID string) ([]finance.Payment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	payments := make([]finance.Payment, 0, len(repo.db.payments))
	for _, p := range repo.db.payments {
		if p.StudentID == studentID {
			payments = append(payments, *p)
		}
	}
	return payments, nil
}
