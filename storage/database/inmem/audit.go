package inmemdb

import (
	"github.com/tmwangi/shuledesk/core/audit"
)

type auditRepository struct {
	db *DB
}

var _ audit.Repository = (*auditRepository)(nil) // interface compliance check

func NewAuditRepository(db *DB) audit.Repository {
	return &auditRepository{db: db}
}

func (repo *auditRepository) AddLog(l audit.Log) (audit.Log, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// newest-first: prepend, unlike every other table
	repo.db.auditLogs = append([]*audit.Log{&l}, repo.db.auditLogs...)
	repo.db.save()
	return l, nil
}

func (repo *auditRepository) QueryAllLogs() ([]audit.Log, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	logs := make([]audit.Log, 0, len(repo.db.auditLogs))
	for _, l := range repo.db.auditLogs {
		logs = append(logs, *l)
	}
	return logs, nil
}

func (repo *auditRepository) QueryLogsByUser(userID string) ([]audit.Log, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	logs := make([]audit.Log, 0, len(repo.db.auditLogs))
	for _, l := range repo.db.auditLogs {
		if l.UserID == userID {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}

func (repo *auditRepository) QueryLogsByEntity(entity audit.Entity) ([]audit.Log, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	logs := make([]audit.Log, 0, len(repo.db.auditLogs))
	for _, l := range repo.db.auditLogs {
		if l.Entity == entity {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}
