package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
)

// In-memory repository fakes. WithTx returns the receiver so transactional
// and plain paths hit the same store; the fake tx runner invokes the
// callback with a nil tx.

type fakeTxRunner struct {
	beginErr error
	calls    int
}

func (f *fakeTxRunner) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.calls++
	return fn(nil)
}

type fakeActorRepo struct {
	actors  map[string]*domain.Actor
	updates int
	seq     int
}

func newFakeActorRepo() *fakeActorRepo {
	return &fakeActorRepo{actors: map[string]*domain.Actor{}}
}

func (f *fakeActorRepo) add(actor *domain.Actor) *domain.Actor {
	actor.NormalizeFlags()
	cp := *actor
	f.actors[actor.ID] = &cp
	return actor
}

func (f *fakeActorRepo) Create(_ context.Context, actor *domain.Actor) error {
	f.seq++
	actor.ID = fmt.Sprintf("actor-%d", f.seq)
	actor.NormalizeFlags()
	cp := *actor
	f.actors[actor.ID] = &cp
	return nil
}

func (f *fakeActorRepo) Update(_ context.Context, actor *domain.Actor) error {
	if _, ok := f.actors[actor.ID]; !ok {
		return pgx.ErrNoRows
	}
	actor.NormalizeFlags()
	cp := *actor
	f.actors[actor.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeActorRepo) GetByID(_ context.Context, id string) (*domain.Actor, error) {
	actor, ok := f.actors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *actor
	return &cp, nil
}

func (f *fakeActorRepo) GetByEmail(_ context.Context, email string) (*domain.Actor, error) {
	for _, actor := range f.actors {
		if actor.Email == email {
			cp := *actor
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeActorRepo) List(_ context.Context, filter repository.ActorFilter) ([]domain.Actor, error) {
	var result []domain.Actor
	for _, actor := range f.actors {
		if filter.Role != nil && actor.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && actor.Active != *filter.Active {
			continue
		}
		result = append(result, *actor)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeActorRepo) ListStaff(_ context.Context) ([]domain.Actor, error) {
	var result []domain.Actor
	for _, actor := range f.actors {
		if actor.IsStaff && actor.Active {
			result = append(result, *actor)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeActorRepo) WithTx(pgx.Tx) repository.ActorRepository { return f }

type fakeBookingRepo struct {
	bookings     map[string]*domain.Booking
	statusWrites int
	seq          int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
}

func (f *fakeBookingRepo) add(booking *domain.Booking) *domain.Booking {
	cp := *booking
	f.bookings[booking.ID] = &cp
	return booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	f.seq++
	booking.ID = fmt.Sprintf("booking-%d", f.seq)
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	if _, ok := f.bookings[booking.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	booking, ok := f.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	booking.Status = status
	f.statusWrites++
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, booking := range f.bookings {
		if filter.CustomerID != nil && booking.CustomerID != *filter.CustomerID {
			continue
		}
		result = append(result, *booking)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeBookingRepo) WithTx(pgx.Tx) repository.BookingRepository { return f }

type fakeRequestRepo struct {
	requests     map[string]*domain.Request
	statusWrites int
	seq          int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]*domain.Request{}}
}

func (f *fakeRequestRepo) add(req *domain.Request) *domain.Request {
	cp := *req
	f.requests[req.ID] = &cp
	return req
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.Request) error {
	f.seq++
	req.ID = fmt.Sprintf("request-%d", f.seq)
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	req.Status = status
	f.statusWrites++
	return nil
}

func (f *fakeRequestRepo) SetAdminNotes(_ context.Context, id, notes string) error {
	req, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	req.AdminNotes = notes
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*domain.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) ListWithFilter(_ context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	var result []domain.Request
	for _, req := range f.requests {
		if filter.Kind != nil && req.Kind != *filter.Kind {
			continue
		}
		if filter.ActorID != nil && (req.ActorID == nil || *req.ActorID != *filter.ActorID) {
			continue
		}
		result = append(result, *req)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeRequestRepo) WithTx(pgx.Tx) repository.RequestRepository { return f }

type fakeMessageRepo struct {
	messages []domain.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	f.seq++
	msg.ID = fmt.Sprintf("msg-%d", f.seq)
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	for i := range f.messages {
		if f.messages[i].ID == id {
			cp := f.messages[i]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMessageRepo) ListByRecipient(_ context.Context, recipientID string, _, _ int) ([]domain.Message, error) {
	var result []domain.Message
	for i := range f.messages {
		if f.messages[i].RecipientID == recipientID {
			result = append(result, f.messages[i])
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id string) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].IsRead = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeMessageRepo) SetReply(_ context.Context, id, reply string) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Reply = &reply
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeMessageRepo) WithTx(pgx.Tx) repository.MessageRepository { return f }

type fakeVehicleTypeRepo struct {
	vehicleTypes map[string]*domain.VehicleType
	seq          int
}

func newFakeVehicleTypeRepo() *fakeVehicleTypeRepo {
	return &fakeVehicleTypeRepo{vehicleTypes: map[string]*domain.VehicleType{}}
}

func (f *fakeVehicleTypeRepo) add(vt *domain.VehicleType) *domain.VehicleType {
	cp := *vt
	f.vehicleTypes[vt.ID] = &cp
	return vt
}

func (f *fakeVehicleTypeRepo) Create(_ context.Context, vt *domain.VehicleType) error {
	f.seq++
	vt.ID = fmt.Sprintf("vt-%d", f.seq)
	cp := *vt
	f.vehicleTypes[vt.ID] = &cp
	return nil
}

func (f *fakeVehicleTypeRepo) Update(_ context.Context, vt *domain.VehicleType) error {
	if _, ok := f.vehicleTypes[vt.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *vt
	f.vehicleTypes[vt.ID] = &cp
	return nil
}

func (f *fakeVehicleTypeRepo) GetByID(_ context.Context, id string) (*domain.VehicleType, error) {
	vt, ok := f.vehicleTypes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *vt
	return &cp, nil
}

func (f *fakeVehicleTypeRepo) List(_ context.Context, _ string) ([]domain.VehicleType, error) {
	var result []domain.VehicleType
	for _, vt := range f.vehicleTypes {
		result = append(result, *vt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeVehicleTypeRepo) WithTx(pgx.Tx) repository.VehicleTypeRepository { return f }

type fakeServiceRepo struct {
	services map[string]*domain.Service
	seq      int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*domain.Service{}}
}

func (f *fakeServiceRepo) add(svc *domain.Service) *domain.Service {
	cp := *svc
	f.services[svc.ID] = &cp
	return svc
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	f.seq++
	svc.ID = fmt.Sprintf("svc-%d", f.seq)
	cp := *svc
	f.services[svc.ID] = &cp
	return nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *svc
	f.services[svc.ID] = &cp
	return nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *svc
	return &cp, nil
}

func (f *fakeServiceRepo) List(_ context.Context, activeOnly bool, _ string) ([]domain.Service, error) {
	var result []domain.Service
	for _, svc := range f.services {
		if activeOnly && !svc.IsActive {
			continue
		}
		result = append(result, *svc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeServiceRepo) WithTx(pgx.Tx) repository.ServiceRepository { return f }
