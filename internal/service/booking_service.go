package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bharatmovers/booking-service/internal/authz"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

// BookingService coordinates booking workflows.
type BookingService struct {
	bookings     repository.BookingRepository
	services     repository.ServiceRepository
	vehicleTypes repository.VehicleTypeRepository
	transitions  *transitioner
	notifier     *NotificationService
	dispatcher   events.Dispatcher
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	BookingRepo     repository.BookingRepository
	ServiceRepo     repository.ServiceRepository
	VehicleTypeRepo repository.VehicleTypeRepository
	ActorRepo       repository.ActorRepository
	TxRunner        repository.TxRunner
	Engine          *lifecycle.Engine
	Notifier        *NotificationService
	Dispatcher      events.Dispatcher
}

// BookingCreateInput describes booking creation payload.
type BookingCreateInput struct {
	ServiceID        string
	PickupLocation   string
	DeliveryLocation string
	PickupDate       time.Time
	DistanceKM       *decimal.Decimal
	Notes            string
}

// BookingUpdateInput describes customer payload edits.
type BookingUpdateInput struct {
	PickupLocation   *string
	DeliveryLocation *string
	PickupDate       *time.Time
	DistanceKM       *decimal.Decimal
	Notes            *string
}

// BookingListFilter describes listing filters.
type BookingListFilter struct {
	Statuses []domain.Status
	Limit    int
	Offset   int
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:     deps.BookingRepo,
		services:     deps.ServiceRepo,
		vehicleTypes: deps.VehicleTypeRepo,
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

// Create opens a booking for the acting customer in the kind's initial
// state. Staff are notified inside the same transaction.
func (s *BookingService) Create(ctx context.Context, actor *domain.Actor, input BookingCreateInput) (*domain.Booking, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, input.ServiceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("service", nil)
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, apperrors.NewValidationError("service is not bookable", nil)
	}

	initial, err := lifecycle.InitialStatus(domain.KindBooking)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	booking := &domain.Booking{
		CustomerID:       actor.ID,
		ServiceID:        svc.ID,
		PickupLocation:   strings.TrimSpace(input.PickupLocation),
		DeliveryLocation: strings.TrimSpace(input.DeliveryLocation),
		PickupDate:       input.PickupDate,
		Status:           initial,
		Notes:            strings.TrimSpace(input.Notes),
	}
	if input.DistanceKM != nil {
		amount, err := s.quote(ctx, svc, *input.DistanceKM)
		if err != nil {
			return nil, err
		}
		booking.TotalDistance = input.DistanceKM
		booking.TotalAmount = &amount
	}

	var sent []domain.Message
	err = s.transitions.txr.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.bookings.WithTx(tx).Create(ctx, booking); err != nil {
			return err
		}
		subject := fmt.Sprintf("New booking %s", booking.ID)
		body := fmt.Sprintf("%s booked %s from %s to %s.", actor.Name, svc.Name, booking.PickupLocation, booking.DeliveryLocation)
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
		Type:       events.EventBookingCreated,
		EntityKind: domain.KindBooking,
		EntityID:   booking.ID,
		Actor:      ea,
		Payload: events.BookingCreatedPayload{
			ServiceID:        booking.ServiceID,
			PickupLocation:   booking.PickupLocation,
			DeliveryLocation: booking.DeliveryLocation,
		},
	})
	s.notifier.PublishMessageEvents(ctx, &ea, sent)
	return booking, nil
}

// List returns bookings visible to the actor, newest first. Customers only
// see their own.
func (s *BookingService) List(ctx context.Context, actor *domain.Actor, filter BookingListFilter) ([]domain.Booking, error) {
	ownOnly, err := authz.CanList(actor)
	if err != nil {
		return nil, err
	}
	repoFilter := repository.BookingFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if ownOnly {
		repoFilter.CustomerID = &actor.ID
	}
	return s.bookings.ListWithFilter(ctx, repoFilter)
}

// Get fetches one booking with ownership enforcement.
func (s *BookingService) Get(ctx context.Context, actor *domain.Actor, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanView(actor, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Update edits payload fields while the booking is still editable. Status
// never changes here; that is the engine's job.
func (s *BookingService) Update(ctx context.Context, actor *domain.Actor, id string, input BookingUpdateInput) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(actor, booking); err != nil {
		return nil, err
	}
	if !booking.Editable() {
		return nil, apperrors.NewConflict("booking can no longer be edited", map[string]any{"status": booking.Status})
	}

	if input.PickupLocation != nil {
		booking.PickupLocation = strings.TrimSpace(*input.PickupLocation)
	}
	if input.DeliveryLocation != nil {
		booking.DeliveryLocation = strings.TrimSpace(*input.DeliveryLocation)
	}
	if input.PickupDate != nil {
		booking.PickupDate = *input.PickupDate
	}
	if input.Notes != nil {
		booking.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.DistanceKM != nil {
		svc, err := s.services.GetByID(ctx, booking.ServiceID)
		if err != nil {
			return nil, err
		}
		amount, err := s.quote(ctx, svc, *input.DistanceKM)
		if err != nil {
			return nil, err
		}
		booking.TotalDistance = input.DistanceKM
		booking.TotalAmount = &amount
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// SetAdminNotes stores internal staff notes on a booking.
func (s *BookingService) SetAdminNotes(ctx context.Context, actor *domain.Actor, id, notes string) (*domain.Booking, error) {
	if actor == nil || !actor.Elevated() {
		return nil, apperrors.NewForbidden("staff privilege required")
	}
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.AdminNotes = strings.TrimSpace(notes)
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// ApplyTransition moves a booking through its status table.
func (s *BookingService) ApplyTransition(ctx context.Context, actor *domain.Actor, id string, action lifecycle.Action) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, sent, err := s.transitions.execute(ctx, actor, booking, action,
		func(outcome *lifecycle.Outcome) (string, string) {
			subject := fmt.Sprintf("Booking %s update", booking.ID)
			body := fmt.Sprintf("Your booking from %s to %s is now %s.",
				booking.PickupLocation, booking.DeliveryLocation, outcome.To)
			return subject, body
		},
		func(tx pgx.Tx, to domain.Status) error {
			return s.bookings.WithTx(tx).UpdateStatus(ctx, booking.ID, to)
		})
	if err != nil {
		return nil, err
	}
	booking.Status = outcome.To

	ea := eventActor(actor)
	publish(ctx, s.dispatcher, events.Event{
		Type:       events.EventStatusChanged,
		EntityKind: domain.KindBooking,
		EntityID:   booking.ID,
		Actor:      ea,
		Payload: events.StatusChangedPayload{
			OldStatus: outcome.From,
			NewStatus: outcome.To,
			Action:    string(outcome.Action),
		},
	})
	s.notifier.PublishMessageEvents(ctx, &ea, sent)
	return booking, nil
}

func (s *BookingService) quote(ctx context.Context, svc *domain.Service, distance decimal.Decimal) (decimal.Decimal, error) {
	if distance.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("distance must not be negative", nil)
	}
	vt, err := s.vehicleTypes.GetByID(ctx, svc.VehicleTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	return svc.BasePrice.Add(vt.PricePerKM.Mul(distance)), nil
}

func validateBookingInput(input BookingCreateInput) error {
	details := map[string]any{}
	if input.ServiceID == "" {
		details["service_id"] = "required"
	}
	if strings.TrimSpace(input.PickupLocation) == "" {
		details["pickup_location"] = "required"
	}
	if strings.TrimSpace(input.DeliveryLocation) == "" {
		details["delivery_location"] = "required"
	}
	if input.PickupDate.IsZero() {
		details["pickup_date"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid booking payload", details)
	}
	return nil
}
