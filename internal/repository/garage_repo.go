package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type GarageRepository struct {
	pool *pgxpool.Pool
}

func NewGarageRepository(pool *pgxpool.Pool) *GarageRepository {
	return &GarageRepository{pool: pool}
}

const garageColumns = `id, user_id, name, description, image_url, vehicle_type_id,
	vehicle_year, vehicle_make_id, vehicle_model_id, vehicle_submodel_id, is_primary, created_at`

func scanGarageItem(row pgx.Row) (model.GarageItem, error) {
	var g model.GarageItem
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.ImageURL, &g.VehicleTypeID,
		&g.VehicleYear, &g.VehicleMakeID, &g.VehicleModelID, &g.VehicleSubmodelID,
		&g.IsPrimary, &g.CreatedAt)
	return g, err
}

func (r *GarageRepository) ListByUser(ctx context.Context, userID int64) ([]model.GarageItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+garageColumns+` FROM garage_items WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list garage items: %w", err)
	}
	defer rows.Close()

	items := make([]model.GarageItem, 0)
	for rows.Next() {
		g, err := scanGarageItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan garage item: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// FindByID is unscoped by owner; it backs the parts-compatibility lookup
// where any caller may reference a garage vehicle by id.
func (r *GarageRepository) FindByID(ctx context.Context, itemID int64) (model.GarageItem, error) {
	g, err := scanGarageItem(r.pool.QueryRow(ctx,
		`SELECT `+garageColumns+` FROM garage_items WHERE id = $1`, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GarageItem{}, apierror.New("NOT_FOUND", "vehicle not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.GarageItem{}, fmt.Errorf("find garage item: %w", err)
	}
	return g, nil
}

func (r *GarageRepository) Create(ctx context.Context, userID int64, in model.GarageItemInput) (model.GarageItem, error) {
	g, err := scanGarageItem(r.pool.QueryRow(ctx,
		`INSERT INTO garage_items
		    (user_id, name, description, image_url, vehicle_type_id, vehicle_year,
		     vehicle_make_id, vehicle_model_id, vehicle_submodel_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+garageColumns,
		userID, in.Name, in.Description, in.ImageURL, in.VehicleTypeID, in.VehicleYear,
		in.VehicleMakeID, in.VehicleModelID, in.VehicleSubmodelID))
	if err != nil {
		return model.GarageItem{}, fmt.Errorf("create garage item: %w", err)
	}
	return g, nil
}

func (r *GarageRepository) Update(ctx context.Context, userID, itemID int64, in model.GarageItemInput) (model.GarageItem, error) {
	g, err := scanGarageItem(r.pool.QueryRow(ctx,
		`UPDATE garage_items SET
		    name = $1, description = $2, image_url = $3, vehicle_type_id = $4,
		    vehicle_year = $5, vehicle_make_id = $6, vehicle_model_id = $7,
		    vehicle_submodel_id = $8
		 WHERE user_id = $9 AND id = $10
		 RETURNING `+garageColumns,
		in.Name, in.Description, in.ImageURL, in.VehicleTypeID, in.VehicleYear,
		in.VehicleMakeID, in.VehicleModelID, in.VehicleSubmodelID, userID, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GarageItem{}, apierror.New("NOT_FOUND", "garage item not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.GarageItem{}, fmt.Errorf("update garage item: %w", err)
	}
	return g, nil
}

func (r *GarageRepository) Delete(ctx context.Context, userID, itemID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM garage_items WHERE user_id = $1 AND id = $2`, userID, itemID)
	if err != nil {
		return fmt.Errorf("delete garage item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "garage item not found", "", http.StatusNotFound)
	}
	return nil
}

// SetPrimary clears the previous primary flag and promotes itemID in one
// transaction so two concurrent calls cannot leave two primaries.
func (r *GarageRepository) SetPrimary(ctx context.Context, userID, itemID int64) (model.GarageItem, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.GarageItem{}, fmt.Errorf("begin set primary: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE garage_items SET is_primary = FALSE WHERE user_id = $1`, userID); err != nil {
		return model.GarageItem{}, fmt.Errorf("clear primary flags: %w", err)
	}

	g, err := scanGarageItem(tx.QueryRow(ctx,
		`UPDATE garage_items SET is_primary = TRUE
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+garageColumns, userID, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GarageItem{}, apierror.New("NOT_FOUND", "garage item not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.GarageItem{}, fmt.Errorf("set primary: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.GarageItem{}, fmt.Errorf("commit set primary: %w", err)
	}
	return g, nil
}

func (r *GarageRepository) Primary(ctx context.Context, userID int64) (model.GarageItem, error) {
	g, err := scanGarageItem(r.pool.QueryRow(ctx,
		`SELECT `+garageColumns+` FROM garage_items WHERE user_id = $1 AND is_primary = TRUE`,
		userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GarageItem{}, apierror.New("NOT_FOUND", "no primary vehicle found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.GarageItem{}, fmt.Errorf("find primary vehicle: %w", err)
	}
	return g, nil
}
