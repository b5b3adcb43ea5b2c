package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// ServiceRepository manages bookable service catalog entries.
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	Update(ctx context.Context, svc *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool, search string) ([]domain.Service, error)
	WithTx(tx pgx.Tx) ServiceRepository
}

type serviceRepository struct {
	db DB
}

// NewServiceRepository builds the repository.
func NewServiceRepository(db DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) WithTx(tx pgx.Tx) ServiceRepository {
	return &serviceRepository{db: tx}
}

func (r *serviceRepository) Create(ctx context.Context, svc *domain.Service) error {
	const query = `
        INSERT INTO services (name, description, base_price, vehicle_type_id, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		svc.Name,
		svc.Description,
		svc.BasePrice,
		svc.VehicleTypeID,
		svc.IsActive,
	).Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, svc *domain.Service) error {
	const query = `
        UPDATE services SET name=$1, description=$2, base_price=$3, vehicle_type_id=$4,
            is_active=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.db.Exec(ctx, query,
		svc.Name,
		svc.Description,
		svc.BasePrice,
		svc.VehicleTypeID,
		svc.IsActive,
		svc.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `
        SELECT id, name, description, base_price, vehicle_type_id, is_active, created_at, updated_at
        FROM services WHERE id=$1`
	var svc domain.Service
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.BasePrice,
		&svc.VehicleTypeID,
		&svc.IsActive,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool, search string) ([]domain.Service, error) {
	query := `
        SELECT id, name, description, base_price, vehicle_type_id, is_active, created_at, updated_at
        FROM services`
	clauses := []string{}
	args := []any{}
	if activeOnly {
		clauses = append(clauses, "is_active=TRUE")
	}
	if search != "" {
		args = append(args, "%"+searchTerm(search)+"%")
		clauses = append(clauses, "(LOWER(name) LIKE $1 OR LOWER(description) LIKE $1)")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Description,
			&svc.BasePrice,
			&svc.VehicleTypeID,
			&svc.IsActive,
			&svc.CreatedAt,
			&svc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, svc)
	}
	return result, rows.Err()
}

func searchTerm(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
