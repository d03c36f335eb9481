package echoapi

import (
	"github.com/tmwangi/shuledesk/core/audit"
)

// The deployment runs without real authentication: callers pick one of these
// known accounts and assert it per request through the X-Actor-ID header.
var testAccounts = []audit.Actor{
	{ID: "acc-principal", Name: "Dr. Sarah Kimani", Email: "principal@shuledesk.ac.ke", Role: "PRINCIPAL"},
	{ID: "acc-bursar", Name: "James Odhiambo", Email: "bursar@shuledesk.ac.ke", Role: "BURSAR"},
	{ID: "acc-hos", Name: "Grace Wanjiru", Email: "studies@shuledesk.ac.ke", Role: "HEAD_OF_STUDIES"},
	{ID: "acc-teacher", Name: "Peter Mutua", Email: "p.mutua@shuledesk.ac.ke", Role: "TEACHER"},
}

type accountDirectory struct {
	byID map[string]audit.Actor
}

var _ audit.Directory = (*accountDirectory)(nil)

func NewAccountDirectory() audit.Directory {
	dir := &accountDirectory{byID: make(map[string]audit.Actor, len(testAccounts))}
	for _, a := range testAccounts {
		dir.byID[a.ID] = a
	}
	return dir
}

func (dir *accountDirectory) GetActor(id string) (audit.Actor, bool) {
	a, ok := dir.byID[id]
	return a, ok
}
