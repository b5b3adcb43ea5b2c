package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// RequestFilter captures request listing parameters.
type RequestFilter struct {
	Kind     *domain.EntityKind
	ActorID  *string
	Statuses []domain.Status
	Limit    int
	Offset   int
}

// RequestRepository persists the three special-purpose request kinds in one
// table keyed by kind; the payload column carries the kind-specific fields.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	SetAdminNotes(ctx context.Context, id, notes string) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	Delete(ctx context.Context, id string) error
	WithTx(tx pgx.Tx) RequestRepository
}

type requestRepository struct {
	db DB
}

// NewRequestRepository instantiates the repository.
func NewRequestRepository(db DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) WithTx(tx pgx.Tx) RequestRepository {
	return &requestRepository{db: tx}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	const query = `
        INSERT INTO requests (kind, actor_id, status, payload, admin_notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		req.Kind,
		req.ActorID,
		req.Status,
		req.Payload,
		req.AdminNotes,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

// UpdateStatus is the sole status write path; only the lifecycle engine's
// outcome reaches it.
func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const query = `UPDATE requests SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestRepository) SetAdminNotes(ctx context.Context, id, notes string) error {
	const query = `UPDATE requests SET admin_notes=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, notes, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	const query = `
        SELECT id, kind, actor_id, status, payload, admin_notes, created_at, updated_at
        FROM requests WHERE id=$1`
	var req domain.Request
	if err := scanRequest(r.db.QueryRow(ctx, query, id), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		clauses = append(clauses, fmt.Sprintf("kind=$%d", len(args)))
	}
	if filter.ActorID != nil {
		args = append(args, *filter.ActorID)
		clauses = append(clauses, fmt.Sprintf("actor_id=$%d", len(args)))
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

	query := fmt.Sprintf(`SELECT id, kind, actor_id, status, payload, admin_notes, created_at, updated_at
        FROM requests WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Request
	for rows.Next() {
		var req domain.Request
		if err := scanRequest(rows, &req); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

// Delete is an explicit admin action, allowed from any state.
func (r *requestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRequest(row pgx.Row, req *domain.Request) error {
	return row.Scan(
		&req.ID,
		&req.Kind,
		&req.ActorID,
		&req.Status,
		&req.Payload,
		&req.AdminNotes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
}
