package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bharatmovers/booking-service/internal/domain"
)

// VehicleTypeRepository manages vehicle catalog entries.
type VehicleTypeRepository interface {
	Create(ctx context.Context, vt *domain.VehicleType) error
	Update(ctx context.Context, vt *domain.VehicleType) error
	GetByID(ctx context.Context, id string) (*domain.VehicleType, error)
	List(ctx context.Context, search string) ([]domain.VehicleType, error)
	WithTx(tx pgx.Tx) VehicleTypeRepository
}

type vehicleTypeRepository struct {
	db DB
}

// NewVehicleTypeRepository builds the repository.
func NewVehicleTypeRepository(db DB) VehicleTypeRepository {
	return &vehicleTypeRepository{db: db}
}

func (r *vehicleTypeRepository) WithTx(tx pgx.Tx) VehicleTypeRepository {
	return &vehicleTypeRepository{db: tx}
}

func (r *vehicleTypeRepository) Create(ctx context.Context, vt *domain.VehicleType) error {
	const query = `
        INSERT INTO vehicle_types (name, description, capacity, price_per_km, image_key)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		vt.Name,
		vt.Description,
		vt.Capacity,
		vt.PricePerKM,
		vt.ImageKey,
	).Scan(&vt.ID, &vt.CreatedAt, &vt.UpdatedAt)
}

func (r *vehicleTypeRepository) Update(ctx context.Context, vt *domain.VehicleType) error {
	const query = `
        UPDATE vehicle_types SET name=$1, description=$2, capacity=$3, price_per_km=$4,
            image_key=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.db.Exec(ctx, query,
		vt.Name,
		vt.Description,
		vt.Capacity,
		vt.PricePerKM,
		vt.ImageKey,
		vt.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleTypeRepository) GetByID(ctx context.Context, id string) (*domain.VehicleType, error) {
	const query = `
        SELECT id, name, description, capacity, price_per_km, image_key, created_at, updated_at
        FROM vehicle_types WHERE id=$1`
	var vt domain.VehicleType
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&vt.ID,
		&vt.Name,
		&vt.Description,
		&vt.Capacity,
		&vt.PricePerKM,
		&vt.ImageKey,
		&vt.CreatedAt,
		&vt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *vehicleTypeRepository) List(ctx context.Context, search string) ([]domain.VehicleType, error) {
	query := `
        SELECT id, name, description, capacity, price_per_km, image_key, created_at, updated_at
        FROM vehicle_types`
	args := []any{}
	if search != "" {
		query += ` WHERE LOWER(name) LIKE $1 OR LOWER(description) LIKE $1`
		args = append(args, "%"+searchTerm(search)+"%")
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VehicleType
	for rows.Next() {
		var vt domain.VehicleType
		if err := rows.Scan(
			&vt.ID,
			&vt.Name,
			&vt.Description,
			&vt.Capacity,
			&vt.PricePerKM,
			&vt.ImageKey,
			&vt.CreatedAt,
			&vt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, vt)
	}
	return result, rows.Err()
}
