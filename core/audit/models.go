package audit

import "time"

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionView   Action = "VIEW"
	ActionExport Action = "EXPORT"
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
)

type Entity string

const (
	EntityStudent    Entity = "STUDENT"
	EntityTeacher    Entity = "TEACHER"
	EntityClass      Entity = "CLASS"
	EntityAttendance Entity = "ATTENDANCE"
	EntityGrade      Entity = "GRADE"
	EntityPayment    Entity = "PAYMENT"
	EntityExport     Entity = "EXPORT"
	EntityUser       Entity = "USER"
)

// Actor is the acting identity a privileged action is attributed to. It is
// asserted by a caller-selected test account: the role is advisory, not a
// security boundary.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Directory resolves an actor id to a known identity.
type Directory interface {
	GetActor(id string) (Actor, bool)
}

// Log is an append-only audit entry. Entries are stored newest-first and are
// never mutated or deleted.
type Log struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    Action    `json:"action"`
	Entity    Entity    `json:"entity"`
	EntityID  string    `json:"entity_id,omitempty"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"` // UTC
	IPAddress string    `json:"ip_address,omitempty"`
}
