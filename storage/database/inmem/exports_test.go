package inmemdb

import (
	"testing"
	"time"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/exports"
)

func createExport(t *testing.T, repo exports.Repository, id string) exports.ExportRequest {
	t.Helper()
	e, err := repo.CreateExport(exports.ExportRequest{
		ID:            id,
		RequestedBy:   "acc-bursar",
		DataType:      exports.DataFeeRecords,
		Format:        exports.FormatCSV,
		Status:        exports.StatusPending,
		Justification: "term 2 fee reconciliation",
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateExport() failed: %v", err)
	}
	return e
}

func TestApproveExport(t *testing.T) {
	db := newTestDB(t)
	repo := NewExportRepository(db)
	e := createExport(t, repo, "e1")

	completedAt := time.Now().UTC()
	got, err := repo.ApproveExport(e.ID, "acc-principal", completedAt)
	if err != nil {
		t.Fatalf("ApproveExport() failed: %v", err)
	}
	if got.Status != exports.StatusApproved {
		t.Errorf("Status = %s; want APPROVED", got.Status)
	}
	if got.ApprovedBy != "acc-principal" {
		t.Errorf("ApprovedBy = %q; want acc-principal", got.ApprovedBy)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v; want %v", got.CompletedAt, completedAt)
	}
}

func TestRejectExport(t *testing.T) {
	db := newTestDB(t)
	repo := NewExportRepository(db)
	e := createExport(t, repo, "e1")

	got, err := repo.RejectExport(e.ID, "too broad")
	if err != nil {
		t.Fatalf("RejectExport() failed: %v", err)
	}
	if got.Status != exports.StatusRejected {
		t.Errorf("Status = %s; want REJECTED", got.Status)
	}
	if got.RejectionReason != "too broad" {
		t.Errorf("RejectionReason = %q; want %q", got.RejectionReason, "too broad")
	}
	if got.ApprovedBy != "" || got.CompletedAt != nil {
		t.Errorf("rejection must not set approval fields: %+v", got)
	}
}

func TestExportTerminalStatesAreProtected(t *testing.T) {
	db := newTestDB(t)
	repo := NewExportRepository(db)

	approved := createExport(t, repo, "e1")
	if _, err := repo.ApproveExport(approved.ID, "acc-principal", time.Now().UTC()); err != nil {
		t.Fatalf("ApproveExport() failed: %v", err)
	}
	rejected := createExport(t, repo, "e2")
	if _, err := repo.RejectExport(rejected.ID, "no justification"); err != nil {
		t.Fatalf("RejectExport() failed: %v", err)
	}

	tests := []struct {
		name string
		op   func() error
	}{
		{"approve approved", func() error { _, err := repo.ApproveExport("e1", "x", time.Now().UTC()); return err }},
		{"reject approved", func() error { _, err := repo.RejectExport("e1", "r"); return err }},
		{"approve rejected", func() error { _, err := repo.ApproveExport("e2", "x", time.Now().UTC()); return err }},
		{"reject rejected", func() error { _, err := repo.RejectExport("e2", "r"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.op().(*core.InvalidTransitionError); !ok {
				t.Errorf("error = %v; want InvalidTransitionError", tt.op())
			}
		})
	}

	// the records themselves are untouched by failed transitions
	got, err := repo.GetExportByID("e2")
	if err != nil {
		t.Fatalf("GetExportByID() failed: %v", err)
	}
	if got.Status != exports.StatusRejected || got.RejectionReason != "no justification" {
		t.Errorf("record changed by failed transition: %+v", got)
	}
}

func TestGetExportByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewExportRepository(db)

	if _, err := repo.GetExportByID("nope"); err != exports.ErrNotFound {
		t.Fatalf("GetExportByID() error = %v; want ErrNotFound", err)
	}
}
