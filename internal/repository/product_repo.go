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

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productSelect = `
	SELECT
	    p.id, p.user_id, p.title, p.description, p.price, p.image_url,
	    p.category_id, p.condition, p.city_id, p.compatibility_info,
	    u.username, cat.name, c.name, s.name, s.code, co.name, co.code,
	    p.created_at, p.updated_at
	FROM products p
	LEFT JOIN users u ON p.user_id = u.id
	LEFT JOIN categories cat ON p.category_id = cat.id
	LEFT JOIN cities c ON p.city_id = c.id
	LEFT JOIN states s ON c.state_id = s.id
	LEFT JOIN countries co ON s.country_id = co.id`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Price, &p.ImageURL,
		&p.CategoryID, &p.Condition, &p.CityID, &p.CompatibilityInfo,
		&p.SellerName, &p.CategoryName, &p.CityName, &p.StateName, &p.StateCode,
		&p.CountryName, &p.CountryCode, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := r.pool.Query(ctx, productSelect+`
		WHERE p.title ILIKE $1
		   OR p.description ILIKE $1
		   OR c.name ILIKE $1
		   OR s.name ILIKE $1
		   OR co.name ILIKE $1
		   OR cat.name ILIKE $1
		ORDER BY p.created_at DESC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, sellerID int64, in model.ProductInput) (model.Product, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products
		    (user_id, title, description, price, image_url, category_id, condition, city_id, compatibility_info, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		 RETURNING id`,
		sellerID, in.Title, in.Description, in.Price, in.ImageURL, in.CategoryID,
		in.Condition, in.CityID, in.CompatibilityInfo).Scan(&id)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Update mutates a product only when it belongs to ownerID. A non-owned or
// missing row both come back as NOT_FOUND so existence never leaks.
func (r *ProductRepository) Update(ctx context.Context, id int64, ownerID int64, in model.ProductInput) (model.Product, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET
		    title = $1, description = $2, price = $3,
		    image_url = COALESCE($4, image_url),
		    category_id = $5, condition = $6, city_id = $7,
		    compatibility_info = COALESCE($8, compatibility_info),
		    updated_at = NOW()
		 WHERE id = $9 AND user_id = $10`,
		in.Title, in.Description, in.Price, in.ImageURL, in.CategoryID,
		in.Condition, in.CityID, in.CompatibilityInfo, id, ownerID)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}

	return r.FindByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}
	return nil
}

func (r *ProductRepository) ListByUser(ctx context.Context, userID int64) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+`
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user products: %w", err)
	}
	return collectProducts(rows)
}

// CategoryFilter narrows a category listing page.
type CategoryFilter struct {
	Search  string
	Vehicle *model.GarageItem
	Limit   int
	Offset  int
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64, f CategoryFilter) ([]model.Product, int, error) {
	where := ` WHERE p.category_id = $1`
	args := []any{categoryID}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND (p.title ILIKE $%d OR p.description ILIKE $%d)`, len(args), len(args))
	}

	if f.Vehicle != nil {
		v := f.Vehicle
		args = append(args, v.VehicleTypeID, v.VehicleMakeID, v.VehicleModelID, v.VehicleSubmodelID)
		n := len(args)
		where += fmt.Sprintf(` AND (
		    p.compatibility_info->>'vehicle_type_id' = $%d::text OR
		    p.compatibility_info->>'vehicle_make_id' = $%d::text OR
		    p.compatibility_info->>'vehicle_model_id' = $%d::text OR
		    p.compatibility_info->>'vehicle_submodel_id' = $%d::text)`, n-3, n-2, n-1, n)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count category products: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx,
		productSelect+where+fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
			len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list category products: %w", err)
	}

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
