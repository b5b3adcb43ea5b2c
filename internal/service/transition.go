package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/repository"
)

// transitioner executes a validated lifecycle outcome: the status write and
// every declared side effect run inside one transaction, so a failure
// partway leaves neither a promoted actor without a status change nor a
// status change without its notifications.
type transitioner struct {
	engine   *lifecycle.Engine
	txr      repository.TxRunner
	actors   repository.ActorRepository
	notifier *NotificationService
}

// execute resolves and persists the transition. statusWrite applies the new
// status to the entity's own table within the supplied transaction; message
// builds the notification subject and body from the resolved outcome.
func (t *transitioner) execute(
	ctx context.Context,
	actor *domain.Actor,
	entity domain.LifecycleEntity,
	action lifecycle.Action,
	message func(outcome *lifecycle.Outcome) (subject, body string),
	statusWrite func(tx pgx.Tx, to domain.Status) error,
) (*lifecycle.Outcome, []domain.Message, error) {
	outcome, err := t.engine.Apply(actor, entity, action)
	if err != nil {
		return nil, nil, err
	}
	subject, body := message(outcome)

	var sent []domain.Message
	err = t.txr.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := statusWrite(tx, outcome.To); err != nil {
			return err
		}
		for _, effect := range outcome.Effects {
			switch effect {
			case lifecycle.EffectPromoteDriver:
				if err := t.promoteSubmitter(ctx, tx, entity); err != nil {
					return err
				}
			case lifecycle.EffectNotifySubmitter:
				submitterID := entity.SubmitterID()
				if submitterID == nil {
					continue
				}
				msg, err := t.notifier.NotifyActor(ctx, tx, *submitterID, actorIDPtr(actor), subject, body)
				if err != nil {
					return err
				}
				sent = append(sent, *msg)
			case lifecycle.EffectNotifyStaff:
				msgs, err := t.notifier.NotifyStaff(ctx, tx, actorIDPtr(actor), subject, body)
				if err != nil {
					return err
				}
				sent = append(sent, msgs...)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outcome, sent, nil
}

func (t *transitioner) promoteSubmitter(ctx context.Context, tx pgx.Tx, entity domain.LifecycleEntity) error {
	submitterID := entity.SubmitterID()
	if submitterID == nil {
		return nil
	}
	repo := t.actors.WithTx(tx)
	submitter, err := repo.GetByID(ctx, *submitterID)
	if err != nil {
		return err
	}
	if submitter.Role != domain.RoleCustomer {
		return nil
	}
	submitter.Role = domain.RoleDriver
	return repo.Update(ctx, submitter)
}

func actorIDPtr(actor *domain.Actor) *string {
	if actor == nil {
		return nil
	}
	id := actor.ID
	return &id
}

func eventActor(actor *domain.Actor) events.Actor {
	if actor == nil {
		return events.Actor{}
	}
	id := actor.ID
	return events.Actor{ActorID: &id, Role: actor.Role}
}

func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
