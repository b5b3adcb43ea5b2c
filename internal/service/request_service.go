package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/authz"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// RequestService coordinates the special-purpose request workflows:
// delivery-partner applications, enterprise inquiries and custom-service
// requests.
type RequestService struct {
	requests    repository.RequestRepository
	transitions *transitioner
	notifier    *NotificationService
	dispatcher  events.Dispatcher
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	ActorRepo   repository.ActorRepository
	TxRunner    repository.TxRunner
	Engine      *lifecycle.Engine
	Notifier    *NotificationService
	Dispatcher  events.Dispatcher
}

// RequestListFilter describes admin listing filters.
type RequestListFilter struct {
	Kind     *domain.EntityKind
	Statuses []domain.Status
	Limit    int
	Offset   int
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests: deps.RequestRepo,
		transitions: &transitioner{
			engine:   deps.Engine,
			txr:      deps.TxRunner,
			actors:   deps.ActorRepo,
			notifier: deps.Notifier,
		},
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
	}
}

// SubmitPartnerRequest files a delivery-partner application for the actor.
func (s *RequestService) SubmitPartnerRequest(ctx context.Context, actor *domain.Actor, details domain.PartnerDetails) (*domain.Request, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	fieldErrors := map[string]any{}
	if strings.TrimSpace(details.VehicleDetails) == "" {
		fieldErrors["vehicle_details"] = "required"
	}
	if strings.TrimSpace(details.LicenseNumber) == "" {
		fieldErrors["license_number"] = "required"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("invalid partner application", fieldErrors)
	}

	payload := map[string]any{
		"vehicle_details":  strings.TrimSpace(details.VehicleDetails),
		"license_number":   strings.TrimSpace(details.LicenseNumber),
		"experience_years": details.ExperienceYears,
	}
	subject := "New delivery partner application"
	body := fmt.Sprintf("%s applied to become a delivery partner.", actor.Name)
	return s.submit(ctx, actor, domain.KindPartnerRequest, payload, subject, body)
}

// SubmitEnterpriseRequest files an enterprise inquiry. The actor may be nil;
// anonymous inquiries are accepted and the staff notification is a system
// message.
func (s *RequestService) SubmitEnterpriseRequest(ctx context.Context, actor *domain.Actor, details domain.EnterpriseDetails) (*domain.Request, error) {
	fieldErrors := map[string]any{}
	if strings.TrimSpace(details.FirstName) == "" {
		fieldErrors["first_name"] = "required"
	}
	if strings.TrimSpace(details.Company) == "" {
		fieldErrors["company"] = "required"
	}
	if strings.TrimSpace(details.WorkEmail) == "" {
		fieldErrors["work_email"] = "required"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("invalid enterprise inquiry", fieldErrors)
	}

	payload := map[string]any{
		"first_name":   strings.TrimSpace(details.FirstName),
		"last_name":    strings.TrimSpace(details.LastName),
		"company":      strings.TrimSpace(details.Company),
		"work_email":   strings.TrimSpace(details.WorkEmail),
		"phone":        strings.TrimSpace(details.Phone),
		"requirements": strings.TrimSpace(details.Requirements),
	}
	subject := "New enterprise inquiry"
	body := fmt.Sprintf("%s %s (%s) asked about enterprise services.", details.FirstName, details.LastName, details.Company)
	return s.submit(ctx, actor, domain.KindEnterpriseRequest, payload, subject, body)
}

// SubmitCustomServiceRequest files a custom-service request for the actor.
func (s *RequestService) SubmitCustomServiceRequest(ctx context.Context, actor *domain.Actor, details domain.CustomServiceDetails) (*domain.Request, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if strings.TrimSpace(details.Description) == "" {
		return nil, apperrors.NewValidationError("invalid custom service request", map[string]any{"description": "required"})
	}

	payload := map[string]any{
		"description":    strings.TrimSpace(details.Description),
		"pickup_area":    strings.TrimSpace(details.PickupArea),
		"drop_area":      strings.TrimSpace(details.DropArea),
		"preferred_date": strings.TrimSpace(details.PreferredDate),
		"budget":         strings.TrimSpace(details.Budget),
	}
	subject := "New custom service request"
	body := fmt.Sprintf("%s requested a custom service.", actor.Name)
	return s.submit(ctx, actor, domain.KindCustomServiceRequest, payload, subject, body)
}

func (s *RequestService) submit(ctx context.Context, actor *domain.Actor, kind domain.EntityKind, payload map[string]any, subject, body string) (*domain.Request, error) {
	initial, err := lifecycle.InitialStatus(kind)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	req := &domain.Request{
		Kind:    kind,
		ActorID: actorIDPtr(actor),
		Status:  initial,
		Payload: payload,
	}

	var sent []domain.Message
	err = s.transitions.txr.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.requests.WithTx(tx).Create(ctx, req); err != nil {
			return err
		}
		msgs, err := s.notifier.NotifyStaff(ctx, tx, actorIDPtr(actor), subject, body)
		if err != nil {
			return err
		}
		sent = msgs
		return nil
	})
	if err != nil {
		return nil, err
	}

	ea := eventActor(actor)
	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventRequestSubmitted,
		EntityKind: kind,
		EntityID:   req.ID,
		Actor:      ea,
		Payload: events.RequestSubmittedPayload{
			Kind:      kind,
			Anonymous: actor == nil,
		},
	})
	s.notifier.PublishMessageEvents(ctx, &ea, sent)
	return req, nil
}

// List returns requests visible to the actor, newest first.
func (s *RequestService) List(ctx context.Context, actor *domain.Actor, filter RequestListFilter) ([]domain.Request, error) {
	ownOnly, err := authz.CanList(actor)
	if err != nil {
		return nil, err
	}
	repoFilter := repository.RequestFilter{
		Kind:     filter.Kind,
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if ownOnly {
		repoFilter.ActorID = &actor.ID
	}
	return s.requests.ListWithFilter(ctx, repoFilter)
}

// Get fetches one request with ownership enforcement.
func (s *RequestService) Get(ctx context.Context, actor *domain.Actor, id string) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanView(actor, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ApplyTransition moves a request through its kind's status table. Approving
// a partner request also promotes the submitter to the driver role, inside
// the same transaction.
func (s *RequestService) ApplyTransition(ctx context.Context, actor *domain.Actor, id string, action lifecycle.Action) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, sent, err := s.transitions.execute(ctx, actor, req, action,
		func(outcome *lifecycle.Outcome) (string, string) {
			subject := fmt.Sprintf("%s update", kindLabel(req.Kind))
			body := fmt.Sprintf("Your %s is now %s.", strings.ToLower(kindLabel(req.Kind)), outcome.To)
			return subject, body
		},
		func(tx pgx.Tx, to domain.Status) error {
			return s.requests.WithTx(tx).UpdateStatus(ctx, req.ID, to)
		})
	if err != nil {
		return nil, err
	}
	req.Status = outcome.To

	ea := eventActor(actor)
	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventStatusChanged,
		EntityKind: req.Kind,
		EntityID:   req.ID,
		Actor:      ea,
		Payload: events.StatusChangedPayload{
			OldStatus: outcome.From,
			NewStatus: outcome.To,
			Action:    string(outcome.Action),
		},
	})
	s.notifier.PublishMessageEvents(ctx, &ea, sent)
	return req, nil
}

// SetAdminNotes stores internal staff notes on a request.
func (s *RequestService) SetAdminNotes(ctx context.Context, actor *domain.Actor, id, notes string) (*domain.Request, error) {
	if actor == nil || !actor.Elevated() {
		return nil, apperrors.NewForbidden("staff privilege required")
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requests.SetAdminNotes(ctx, req.ID, strings.TrimSpace(notes)); err != nil {
		return nil, err
	}
	req.AdminNotes = strings.TrimSpace(notes)
	return req, nil
}

// Delete removes a request. Admin only, allowed from any state.
func (s *RequestService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if err := authz.CanDelete(actor); err != nil {
		return err
	}
	return s.requests.Delete(ctx, id)
}

func kindLabel(kind domain.EntityKind) string {
	switch kind {
	case domain.KindPartnerRequest:
		return "Delivery partner application"
	case domain.KindEnterpriseRequest:
		return "Enterprise inquiry"
	case domain.KindCustomServiceRequest:
		return "Custom service request"
	default:
		return "Request"
	}
}
