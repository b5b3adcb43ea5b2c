package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// ActorFilter captures admin listing parameters.
type ActorFilter struct {
	Role   *domain.Role
	Active *bool
	Limit  int
	Offset int
}

// ActorRepository defines persistence access for actors. Actors are never
// deleted, only deactivated.
type ActorRepository interface {
	Create(ctx context.Context, actor *domain.Actor) error
	Update(ctx context.Context, actor *domain.Actor) error
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Actor, error)
	List(ctx context.Context, filter ActorFilter) ([]domain.Actor, error)
	ListStaff(ctx context.Context) ([]domain.Actor, error)
	WithTx(tx pgx.Tx) ActorRepository
}

type actorRepository struct {
	db DB
}

// NewActorRepository returns a Postgres-backed implementation.
func NewActorRepository(db DB) ActorRepository {
	return &actorRepository{db: db}
}

func (r *actorRepository) WithTx(tx pgx.Tx) ActorRepository {
	return &actorRepository{db: tx}
}

const actorColumns = `id, name, email, phone, address, password_hash, role,
        is_staff, is_customer, is_driver, active, email_notifications, sms_notifications,
        created_at, updated_at`

func (r *actorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	actor.NormalizeFlags()
	const query = `
        INSERT INTO actors (name, email, phone, address, password_hash, role,
            is_staff, is_customer, is_driver, active, email_notifications, sms_notifications)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		actor.Name,
		actor.Email,
		actor.Phone,
		actor.Address,
		actor.PasswordHash,
		actor.Role,
		actor.IsStaff,
		actor.IsCustomer,
		actor.IsDriver,
		actor.Active,
		actor.EmailNotifications,
		actor.SMSNotifications,
	).Scan(&actor.ID, &actor.CreatedAt, &actor.UpdatedAt)
}

func (r *actorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	actor.NormalizeFlags()
	const query = `
        UPDATE actors SET name=$1, email=$2, phone=$3, address=$4, password_hash=$5, role=$6,
            is_staff=$7, is_customer=$8, is_driver=$9, active=$10,
            email_notifications=$11, sms_notifications=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.db.Exec(ctx, query,
		actor.Name,
		actor.Email,
		actor.Phone,
		actor.Address,
		actor.PasswordHash,
		actor.Role,
		actor.IsStaff,
		actor.IsCustomer,
		actor.IsDriver,
		actor.Active,
		actor.EmailNotifications,
		actor.SMSNotifications,
		actor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *actorRepository) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *actorRepository) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *actorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Actor, error) {
	var actor domain.Actor
	if err := scanActor(r.db.QueryRow(ctx, query, arg), &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepository) List(ctx context.Context, filter ActorFilter) ([]domain.Actor, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM actors WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		actorColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActors(rows)
}

// ListStaff returns every active actor holding staff privilege, in a stable
// order. Notification fan-out targets all of them.
func (r *actorRepository) ListStaff(ctx context.Context) ([]domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE is_staff=TRUE AND active=TRUE ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActors(rows)
}

func collectActors(rows pgx.Rows) ([]domain.Actor, error) {
	var result []domain.Actor
	for rows.Next() {
		var actor domain.Actor
		if err := scanActor(rows, &actor); err != nil {
			return nil, err
		}
		result = append(result, actor)
	}
	return result, rows.Err()
}

func scanActor(row pgx.Row, actor *domain.Actor) error {
	return row.Scan(
		&actor.ID,
		&actor.Name,
		&actor.Email,
		&actor.Phone,
		&actor.Address,
		&actor.PasswordHash,
		&actor.Role,
		&actor.IsStaff,
		&actor.IsCustomer,
		&actor.IsDriver,
		&actor.Active,
		&actor.EmailNotifications,
		&actor.SMSNotifications,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
}
