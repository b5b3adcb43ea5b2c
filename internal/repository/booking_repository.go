package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// BookingFilter captures booking listing parameters.
type BookingFilter struct {
	CustomerID *string
	Statuses   []domain.Status
	Limit      int
	Offset     int
}

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	WithTx(tx pgx.Tx) BookingRepository
}

type bookingRepository struct {
	db DB
}

// NewBookingRepository instantiates the repository.
func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) WithTx(tx pgx.Tx) BookingRepository {
	return &bookingRepository{db: tx}
}

const bookingColumns = `id, customer_id, service_id, pickup_location, delivery_location,
        pickup_date, status, total_distance, total_amount, notes, admin_notes, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (customer_id, service_id, pickup_location, delivery_location,
            pickup_date, status, total_distance, total_amount, notes, admin_notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		booking.CustomerID,
		booking.ServiceID,
		booking.PickupLocation,
		booking.DeliveryLocation,
		booking.PickupDate,
		booking.Status,
		nullDecimal(booking.TotalDistance),
		nullDecimal(booking.TotalAmount),
		booking.Notes,
		booking.AdminNotes,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET service_id=$1, pickup_location=$2, delivery_location=$3,
            pickup_date=$4, total_distance=$5, total_amount=$6, notes=$7, admin_notes=$8,
            updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.db.Exec(ctx, query,
		booking.ServiceID,
		booking.PickupLocation,
		booking.DeliveryLocation,
		booking.PickupDate,
		nullDecimal(booking.TotalDistance),
		nullDecimal(booking.TotalAmount),
		booking.Notes,
		booking.AdminNotes,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus is the sole status write path; only the lifecycle engine's
// outcome reaches it.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const query = `UPDATE bookings SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`
	var booking domain.Booking
	if err := scanBooking(r.db.QueryRow(ctx, query, id), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		bookingColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}

func scanBooking(row pgx.Row, booking *domain.Booking) error {
	var distance, amount decimal.NullDecimal
	if err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ServiceID,
		&booking.PickupLocation,
		&booking.DeliveryLocation,
		&booking.PickupDate,
		&booking.Status,
		&distance,
		&amount,
		&booking.Notes,
		&booking.AdminNotes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return err
	}
	if distance.Valid {
		booking.TotalDistance = &distance.Decimal
	}
	if amount.Valid {
		booking.TotalAmount = &amount.Decimal
	}
	return nil
}

func nullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *value, Valid: true}
}
