package lifecycle

import (
	"fmt"

	"github.com/bharatmovers/booking-service/internal/authz"
	"github.com/bharatmovers/booking-service/internal/domain"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// Outcome is the validated result of a transition. The caller persists the
// status change and executes the effects inside one transaction, so the
// entity can never advance without its side effects or vice versa.
type Outcome struct {
	Kind    domain.EntityKind
	From    domain.Status
	To      domain.Status
	Action  Action
	Effects []Effect
}

// Engine validates and resolves status transitions against the registered
// per-kind tables. It is the single legal path to a status change.
type Engine struct{}

// NewEngine returns the shared transition engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply authorizes the actor, validates (status, action) against the kind's
// table and returns the outcome. The entity is not mutated here; callers
// apply Outcome.To when persisting.
func (e *Engine) Apply(actor *domain.Actor, entity domain.LifecycleEntity, action Action) (*Outcome, error) {
	table, ok := TableFor(entity.EntityKind())
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Errorf("no transition table registered for kind %s", entity.EntityKind()))
	}
	if err := authz.CanTransition(actor, entity); err != nil {
		return nil, err
	}

	current := entity.CurrentStatus()
	if !table.HasState(current) {
		return nil, apperrors.NewInternalError(fmt.Errorf("entity %s has status %s outside the %s state set", entity.EntityID(), current, table.Kind))
	}

	rule := table.Resolve(current, action, actor.Role)
	if rule == nil {
		return nil, apperrors.NewIllegalTransition(string(current), string(action))
	}

	effects := make([]Effect, len(rule.Effects))
	copy(effects, rule.Effects)
	return &Outcome{
		Kind:    table.Kind,
		From:    current,
		To:      rule.To,
		Action:  action,
		Effects: effects,
	}, nil
}

// InitialStatus returns the declared initial state for a kind.
func InitialStatus(kind domain.EntityKind) (domain.Status, error) {
	table, ok := TableFor(kind)
	if !ok {
		return "", fmt.Errorf("no transition table registered for kind %s", kind)
	}
	return table.Initial, nil
}
