package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-parts-market/internal/model"
)

// VehicleRepository serves the vehicle taxonomy: types, makes, models and
// submodels form a four-level chain keyed by the parent id.
type VehicleRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

func collectRefs(rows pgx.Rows) ([]model.VehicleRef, error) {
	defer rows.Close()

	refs := make([]model.VehicleRef, 0)
	for rows.Next() {
		var ref model.VehicleRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan vehicle ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *VehicleRepository) ListTypes(ctx context.Context) ([]model.VehicleRef, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM vehicle_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: %w", err)
	}
	return collectRefs(rows)
}

func (r *VehicleRepository) ListMakes(ctx context.Context, typeID int64) ([]model.VehicleRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM vehicle_makes WHERE type_id = $1 ORDER BY name`, typeID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle makes: %w", err)
	}
	return collectRefs(rows)
}

func (r *VehicleRepository) ListModels(ctx context.Context, makeID int64) ([]model.VehicleRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM vehicle_models WHERE make_id = $1 ORDER BY name`, makeID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle models: %w", err)
	}
	return collectRefs(rows)
}

func (r *VehicleRepository) ListSubmodels(ctx context.Context, modelID int64) ([]model.VehicleRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM vehicle_submodels WHERE model_id = $1 ORDER BY name`, modelID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle submodels: %w", err)
	}
	return collectRefs(rows)
}

func (r *VehicleRepository) CreateType(ctx context.Context, name string) (model.VehicleRef, error) {
	var ref model.VehicleRef
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vehicle_types (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&ref.ID, &ref.Name)
	if err != nil {
		return model.VehicleRef{}, fmt.Errorf("create vehicle type: %w", err)
	}
	return ref, nil
}

func (r *VehicleRepository) CreateMake(ctx context.Context, typeID int64, name string) (model.VehicleRef, error) {
	var ref model.VehicleRef
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vehicle_makes (type_id, name) VALUES ($1, $2) RETURNING id, name`,
		typeID, name).Scan(&ref.ID, &ref.Name)
	if err != nil {
		return model.VehicleRef{}, fmt.Errorf("create vehicle make: %w", err)
	}
	return ref, nil
}

func (r *VehicleRepository) CreateModel(ctx context.Context, makeID int64, name string) (model.VehicleRef, error) {
	var ref model.VehicleRef
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vehicle_models (make_id, name) VALUES ($1, $2) RETURNING id, name`,
		makeID, name).Scan(&ref.ID, &ref.Name)
	if err != nil {
		return model.VehicleRef{}, fmt.Errorf("create vehicle model: %w", err)
	}
	return ref, nil
}

func (r *VehicleRepository) CreateSubmodel(ctx context.Context, modelID int64, name string) (model.VehicleRef, error) {
	var ref model.VehicleRef
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vehicle_submodels (model_id, name) VALUES ($1, $2) RETURNING id, name`,
		modelID, name).Scan(&ref.ID, &ref.Name)
	if err != nil {
		return model.VehicleRef{}, fmt.Errorf("create vehicle submodel: %w", err)
	}
	return ref, nil
}
