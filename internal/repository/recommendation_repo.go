package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-parts-market/internal/model"
)

type RecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepository(pool *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{pool: pool}
}

// counterColumn maps a validated interaction type to its popularity counter.
// The service layer rejects anything outside this set before we get here.
var counterColumn = map[string]string{
	model.InteractionView:     "view_count",
	model.InteractionFavorite: "favorite_count",
	model.InteractionPurchase: "purchase_count",
}

func (r *RecommendationRepository) RecordInteraction(ctx context.Context, in model.Interaction) error {
	column, ok := counterColumn[in.InteractionType]
	if !ok {
		return fmt.Errorf("unknown interaction type %q", in.InteractionType)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin record interaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_interactions (user_id, product_id, interaction_type)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id, interaction_type) DO NOTHING`,
		in.UserID, in.ProductID, in.InteractionType); err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}

	query := fmt.Sprintf(
		`INSERT INTO product_popularity (product_id, %[1]s)
		 VALUES ($1, 1)
		 ON CONFLICT (product_id) DO UPDATE
		 SET %[1]s = product_popularity.%[1]s + 1, last_updated = NOW()`, column)
	if _, err := tx.Exec(ctx, query, in.ProductID); err != nil {
		return fmt.Errorf("bump popularity: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *RecommendationRepository) UpsertPreferences(ctx context.Context, userID int64, req model.PreferencesRequest) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_preferences
		    (user_id, preferred_categories, preferred_price_range, preferred_locations, last_updated)
		 VALUES ($1,
		         COALESCE($2::jsonb, '[]'::jsonb),
		         COALESCE($3::jsonb, '{"min":0,"max":1000000}'::jsonb),
		         COALESCE($4::jsonb, '[]'::jsonb),
		         NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		    preferred_categories  = COALESCE($2::jsonb, user_preferences.preferred_categories),
		    preferred_price_range = COALESCE($3::jsonb, user_preferences.preferred_price_range),
		    preferred_locations   = COALESCE($4::jsonb, user_preferences.preferred_locations),
		    last_updated          = NOW()`,
		userID, nullableJSON(req.Categories), nullableJSON(req.PriceRange), nullableJSON(req.Locations))
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (r *RecommendationRepository) Preferences(ctx context.Context, userID int64) (model.Preferences, error) {
	var p model.Preferences
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, preferred_categories, preferred_price_range, preferred_locations, last_updated
		 FROM user_preferences WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.PreferredCategories, &p.PreferredPriceRange, &p.PreferredLocations, &p.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Preferences{UserID: userID}, nil
	}
	if err != nil {
		return model.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return p, nil
}

// Personalized returns up to limit products the user has not interacted
// with, restricted to their preferences and ranked by the fixed weighted
// popularity score view + 2*favorite + 3*purchase.
func (r *RecommendationRepository) Personalized(ctx context.Context, userID int64, limit int) ([]model.RecommendedProduct, error) {
	rows, err := r.pool.Query(ctx, `
		WITH prefs AS (
		    SELECT
		        COALESCE((SELECT preferred_categories  FROM user_preferences WHERE user_id = $1), '[]'::jsonb)                    AS categories,
		        COALESCE((SELECT preferred_price_range FROM user_preferences WHERE user_id = $1), '{"min":0,"max":1000000}'::jsonb) AS price_range,
		        COALESCE((SELECT preferred_locations   FROM user_preferences WHERE user_id = $1), '[]'::jsonb)                    AS locations
		)
		SELECT p.id, p.user_id, p.title, p.description, p.price, p.image_url,
		       p.category_id, p.condition, p.city_id, u.username,
		       p.created_at, p.updated_at,
		       pp.view_count + pp.favorite_count * 2 + pp.purchase_count * 3 AS popularity_score
		FROM products p
		JOIN users u ON p.user_id = u.id
		JOIN product_popularity pp ON p.id = pp.product_id
		CROSS JOIN prefs
		WHERE p.user_id <> $1
		  AND NOT EXISTS (
		      SELECT 1 FROM user_interactions ui
		      WHERE ui.user_id = $1 AND ui.product_id = p.id
		  )
		  AND (
		      p.category_id::text IN (SELECT jsonb_array_elements_text(prefs.categories))
		      OR p.price BETWEEN (prefs.price_range->>'min')::numeric AND (prefs.price_range->>'max')::numeric
		      OR p.city_id::text IN (SELECT jsonb_array_elements_text(prefs.locations))
		  )
		ORDER BY popularity_score DESC, p.created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]model.RecommendedProduct, 0)
	for rows.Next() {
		var rec model.RecommendedProduct
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Price,
			&rec.ImageURL, &rec.CategoryID, &rec.Condition, &rec.CityID, &rec.SellerName,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.PopularityScore); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
