package audit

import "time"

type (
	Repository interface {
		// AddLog prepends the entry: the log is stored newest-first, unlike
		// every other table, which appends.
		AddLog(l Log) (Log, error)
		QueryAllLogs() ([]Log, error)
		QueryLogsByUser(userID string) ([]Log, error)
		QueryLogsByEntity(entity Entity) ([]Log, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one audit entry attributing an action to the actor.
func (svc *Service) Record(id string, actor Actor, action Action, entity Entity, entityID, details, ip string) (Log, error) {
	l := Log{
		ID:        id,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		Timestamp: time.Now().UTC(),
		IPAddress: ip,
	}
	return svc.repo.AddLog(l)
}

func (svc *Service) QueryAll() ([]Log, error) {
	return svc.repo.QueryAllLogs()
}

func (svc *Service) QueryByUser(userID string) ([]Log, error) {
	return svc.repo.QueryLogsByUser(userID)
}

func (svc *Service) QueryByEntity(entity Entity) ([]Log, error) {
	return svc.repo.QueryLogsByEntity(entity)
}
