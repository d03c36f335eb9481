package inmemdb

import (
	"time"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/exports"
)

type exportRepository struct {
	db *DB
}

var _ exports.Repository = (*exportRepository)(nil) // interface compliance check

func NewExportRepository(db *DB) exports.Repository {
	return &exportRepository{db: db}
}

func (repo *exportRepository) CreateExport(e exports.ExportRequest) (exports.ExportRequest, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.exports = append(repo.db.exports, &e)
	repo.db.save()
	return e, nil
}

func (repo *exportRepository) QueryAllExports() ([]exports.ExportRequest, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	requests := make([]exports.ExportRequest, 0, len(repo.db.exports))
	for _, e := range repo.db.exports {
		requests = append(requests, *e)
	}
	return requests, nil
}

func (repo *exportRepository) GetExportByID(id string) (exports.ExportRequest, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if e := findExport(repo.db, id); e != nil {
		return *e, nil
	}
	return exports.ExportRequest{}, exports.ErrNotFound
}

func (repo *exportRepository) ApproveExport(id, approvedBy string, completedAt time.Time) (exports.ExportRequest, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e := findExport(repo.db, id)
	if e == nil {
		return exports.ExportRequest{}, exports.ErrNotFound
	}
	// terminal states are protected: earlier decisions are never overwritten
	if e.Status != exports.StatusPending {
		return exports.ExportRequest{}, core.NewInvalidTransitionError("export request", string(e.Status), "approve")
	}
	e.Status = exports.StatusApproved
	e.ApprovedBy = approvedBy
	e.CompletedAt = &completedAt
	repo.db.save()
	return *e, nil
}

func (repo *exportRepository) RejectExport(id, reason string) (exports.ExportRequest, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e := findExport(repo.db, id)
	if e == nil {
		return exports.ExportRequest{}, exports.ErrNotFound
	}
	if e.Status != exports.StatusPending {
		return exports.ExportRequest{}, core.NewInvalidTransitionError("export request", string(e.Status), "reject")
	}
	e.Status = exports.StatusRejected
	e.RejectionReason = reason
	repo.db.save()
	return *e, nil
}

func findExport(db *DB, id string) *exports.ExportRequest {
	for _, e := range db.exports {
		if e.ID == id {
			return e
		}
	}
	return nil
}
