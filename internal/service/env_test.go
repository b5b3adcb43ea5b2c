package service

import (
	"go.uber.org/zap"

	"github.com/bharatmovers/booking-service/internal/config"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/events"
	"github.com/bharatmovers/booking-service/internal/lifecycle"
	"github.com/bharatmovers/booking-service/internal/mailer"
)

// testEnv wires the service layer over in-memory fakes.
type testEnv struct {
	actors       *fakeActorRepo
	bookings     *fakeBookingRepo
	requests     *fakeRequestRepo
	messages     *fakeMessageRepo
	vehicleTypes *fakeVehicleTypeRepo
	services     *fakeServiceRepo
	tx           *fakeTxRunner
	dispatcher   events.Dispatcher
	notifier     *NotificationService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		actors:       newFakeActorRepo(),
		bookings:     newFakeBookingRepo(),
		requests:     newFakeRequestRepo(),
		messages:     newFakeMessageRepo(),
		vehicleTypes: newFakeVehicleTypeRepo(),
		services:     newFakeServiceRepo(),
		tx:           &fakeTxRunner{},
		dispatcher:   events.NewInMemoryDispatcher(),
	}
	logger := zap.NewNop()
	env.notifier = NewNotificationService(env.actors, env.messages, env.dispatcher, mailer.New(config.MailConfig{}, logger), logger)
	return env
}

func (e *testEnv) bookingService() *BookingService {
	return NewBookingService(BookingDependencies{
		BookingRepo:     e.bookings,
		ServiceRepo:     e.services,
		VehicleTypeRepo: e.vehicleTypes,
		ActorRepo:       e.actors,
		TxRunner:        e.tx,
		Engine:          lifecycle.NewEngine(),
		Notifier:        e.notifier,
		Dispatcher:      e.dispatcher,
	})
}

func (e *testEnv) requestService() *RequestService {
	return NewRequestService(RequestDependencies{
		RequestRepo: e.requests,
		ActorRepo:   e.actors,
		TxRunner:    e.tx,
		Engine:      lifecycle.NewEngine(),
		Notifier:    e.notifier,
		Dispatcher:  e.dispatcher,
	})
}

func (e *testEnv) seedActor(id string, role domain.Role) *domain.Actor {
	return e.actors.add(&domain.Actor{
		ID:                 id,
		Name:               id,
		Email:              id + "@example.com",
		Role:               role,
		Active:             true,
		EmailNotifications: true,
	})
}

func (e *testEnv) messagesFor(recipientID string) []domain.Message {
	var result []domain.Message
	for i := range e.messages.messages {
		if e.messages.messages[i].RecipientID == recipientID {
			result = append(result, e.messages.messages[i])
		}
	}
	return result
}
