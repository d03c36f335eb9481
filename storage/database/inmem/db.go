package inmemdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/tmwangi/shuledesk/core"
	"github.com/tmwangi/shuledesk/core/academics"
	"github.com/tmwangi/shuledesk/core/audit"
	"github.com/tmwangi/shuledesk/core/exports"
	"github.com/tmwangi/shuledesk/core/finance"
	"github.com/tmwangi/shuledesk/core/school"
)

// snapshotName is the fixed logical namespace the whole store is persisted
// under, as one JSON document keyed by table name.
const snapshotName = "shuledesk-storage.json"

// DB is the in-process data store. Tables are slices so reads come back in
// insertion order; the audit log is the exception and is kept newest-first.
// One store-wide mutex guards every operation so that compound operations
// (payment + balance decrement, class ↔ teacher assignment sync, workflow
// transitions) are atomic: no reader observes a half-applied write.
type DB struct {
	mu sync.RWMutex

	teachers   []*school.Teacher
	classes    []*school.Class
	students   []*school.Student
	attendance []*academics.Attendance
	grades     []*academics.Grade
	payments   []*finance.Payment
	exports    []*exports.ExportRequest
	auditLogs  []*audit.Log

	snapshotPath string // "" disables persistence
	logger       core.Logger
}

// Open creates the store, rehydrating it wholesale from the snapshot document
// if one exists. A nil conf (or empty SnapshotDir) yields an ephemeral store.
func Open(conf *core.Config, logger core.Logger) (*DB, error) {
	db := &DB{logger: logger}
	if conf != nil && conf.SnapshotDir != "" {
		db.snapshotPath = filepath.Join(conf.SnapshotDir, snapshotName)
		if err := db.load(); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Close writes a final snapshot.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.write()
}

type document struct {
	Teachers   []*school.Teacher        `json:"teachers"`
	Classes    []*school.Class          `json:"classes"`
	Students   []*school.Student        `json:"students"`
	Attendance []*academics.Attendance  `json:"attendance"`
	Grades     []*academics.Grade       `json:"grades"`
	Payments   []*finance.Payment       `json:"payments"`
	Exports    []*exports.ExportRequest `json:"exports"`
	AuditLogs  []*audit.Log             `json:"audit_logs"`
}

func (db *DB) load() error {
	data, err := os.ReadFile(db.snapshotPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading snapshot")
	}

	var doc document
	if err = json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decoding snapshot")
	}
	db.teachers = doc.Teachers
	db.classes = doc.Classes
	db.students = doc.Students
	db.attendance = doc.Attendance
	db.grades = doc.Grades
	db.payments = doc.Payments
	db.exports = doc.Exports
	db.auditLogs = doc.AuditLogs
	return nil
}

func (db *DB) write() error {
	if db.snapshotPath == "" {
		return nil
	}

	doc := document{
		Teachers:   db.teachers,
		Classes:    db.classes,
		Students:   db.students,
		Attendance: db.attendance,
		Grades:     db.grades,
		Payments:   db.payments,
		Exports:    db.exports,
		AuditLogs:  db.auditLogs,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	// write-then-rename so a crash mid-write cannot truncate the document
	tmp := db.snapshotPath + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing snapshot")
	}
	return errors.Wrap(os.Rename(tmp, db.snapshotPath), "replacing snapshot")
}

// save persists the store after a mutation; the write lock must be held.
// Snapshot failures are logged, not surfaced: the mutation itself succeeded.
func (db *DB) save() {
	if err := db.write(); err != nil && db.logger != nil {
		db.logger.Warn("saving snapshot failed", err)
	}
}
