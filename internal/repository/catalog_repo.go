package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

// CatalogRepository serves the read-mostly reference data: categories and
// the country/state/city hierarchy.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CatalogRepository) FindCategory(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, apierror.New("NOT_FOUND", "category not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

func (r *CatalogRepository) ListCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]model.Country, 0)
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *CatalogRepository) ListStates(ctx context.Context, countryID int64) ([]model.State, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, country_id, name, code FROM states WHERE country_id = $1 ORDER BY name`,
		countryID)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	states := make([]model.State, 0)
	for rows.Next() {
		var s model.State
		if err := rows.Scan(&s.ID, &s.CountryID, &s.Name, &s.Code); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *CatalogRepository) ListCities(ctx context.Context, stateID int64) ([]model.City, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, state_id, name FROM cities WHERE state_id = $1 ORDER BY name`, stateID)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]model.City, 0)
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.StateID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *CatalogRepository) SearchCities(ctx context.Context, query string) ([]model.City, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.state_id, c.name, s.name, s.code, co.name
		FROM cities c
		JOIN states s ON c.state_id = s.id
		JOIN countries co ON s.country_id = co.id
		WHERE c.name ILIKE $1
		ORDER BY c.name
		LIMIT 10
	`, "%"+strings.TrimSpace(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("search cities: %w", err)
	}
	defer rows.Close()

	cities := make([]model.City, 0)
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.StateID, &c.Name, &c.StateName, &c.StateCode, &c.CountryName); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
