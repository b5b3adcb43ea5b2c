package lifecycle

import (
	"github.com/bharatmovers/booking-service/internal/domain"
)

// Action names a requested status change.
type Action string

const (
	ActionConfirm     Action = "confirm"
	ActionStart       Action = "start"
	ActionComplete    Action = "complete"
	ActionCancel      Action = "cancel"
	ActionMarkPending Action = "mark_pending"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionContact     Action = "contact"
	ActionClose       Action = "close"
)

// AnyStatus is the wildcard from-state used by unrestricted admin rules.
const AnyStatus domain.Status = "*"

// Effect is a side effect the caller must execute alongside the status
// write, inside the same transaction.
type Effect string

const (
	EffectNotifySubmitter Effect = "notify_submitter"
	EffectNotifyStaff     Effect = "notify_staff"
	// EffectPromoteDriver sets the submitting actor's role to DRIVER.
	EffectPromoteDriver Effect = "promote_driver"
)

// Rule is one legal (from, action) -> to entry of a kind's table.
type Rule struct {
	From    domain.Status
	Action  Action
	To      domain.Status
	Roles   []domain.Role
	Effects []Effect
}

func (r Rule) allowsRole(role domain.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, candidate := range r.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

func (r Rule) matches(from domain.Status, action Action) bool {
	if r.Action != action {
		return false
	}
	return r.From == AnyStatus || r.From == from
}

// Table declares a kind's initial state, finite state set and rules.
type Table struct {
	Kind    domain.EntityKind
	Initial domain.Status
	States  []domain.Status
	Rules   []Rule
}

// HasState reports membership in the declared state set.
func (t *Table) HasState(status domain.Status) bool {
	for _, s := range t.States {
		if s == status {
			return true
		}
	}
	return false
}

// Resolve finds the rule for (from, action) visible to the given role.
// A nil result means the transition is not declared for that role.
func (t *Table) Resolve(from domain.Status, action Action, role domain.Role) *Rule {
	for i := range t.Rules {
		if t.Rules[i].matches(from, action) && t.Rules[i].allowsRole(role) {
			return &t.Rules[i]
		}
	}
	return nil
}

var registry = map[domain.EntityKind]*Table{}

// Register installs a kind's table. Called at init; later registrations for
// the same kind replace the earlier one.
func Register(table *Table) {
	registry[table.Kind] = table
}

// TableFor returns the registered table for a kind.
func TableFor(kind domain.EntityKind) (*Table, bool) {
	table, ok := registry[kind]
	return table, ok
}
