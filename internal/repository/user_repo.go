package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, bio, phone_number,
	profile_image_url, city_id, is_verified, created_at, updated_at, last_active`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Bio, &u.PhoneNumber,
		&u.ProfileImageURL, &u.CityID, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt, &u.LastActive)
	return u, err
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByIdentifier looks a user up by username OR email, case-insensitively.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE lower(username) = lower($1) OR lower(email) = lower($1)`,
		strings.TrimSpace(identifier)))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by identifier: %w", err)
	}
	return u, nil
}

// Create inserts a new user. The unique indexes on lower(username) and
// lower(email) are the sole arbiter of duplicates; a violation surfaces as
// Conflict so concurrent registrations lose cleanly.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, created_at, updated_at, last_active)
		 VALUES ($1, $2, $3, NOW(), NOW(), NOW())
		 RETURNING `+userColumns,
		username, email, passwordHash))
	if isUniqueViolation(err) {
		return model.User{}, apierror.New("ALREADY_EXISTS", "user already exists", "", http.StatusConflict)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) UsernameTakenByOther(ctx context.Context, username string, userID int64) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(username) = lower($1) AND id <> $2)`,
		strings.TrimSpace(username), userID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check username taken: %w", err)
	}
	return taken, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET
		    username     = COALESCE($1, username),
		    bio          = COALESCE($2, bio),
		    phone_number = COALESCE($3, phone_number),
		    city_id      = COALESCE($4, city_id),
		    updated_at   = NOW()
		 WHERE id = $5
		 RETURNING `+userColumns,
		update.Username, update.Bio, update.PhoneNumber, update.CityID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	if isUniqueViolation(err) {
		return model.User{}, apierror.New("ALREADY_EXISTS", "username already taken", "username", http.StatusConflict)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func (r *UserRepository) TouchLastActive(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_active = $2 WHERE id = $1`, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch last active: %w", err)
	}
	return nil
}

// ProfileByID resolves the public profile view with location names and
// aggregate listing/review stats.
func (r *UserRepository) ProfileByID(ctx context.Context, id int64) (model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT
		    u.id, u.username, u.email, u.bio, u.phone_number, u.profile_image_url,
		    u.is_verified, c.name, s.name, co.name,
		    (SELECT COUNT(*) FROM products WHERE user_id = u.id),
		    (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviewed_id = u.id),
		    (SELECT COUNT(*) FROM reviews WHERE reviewed_id = u.id),
		    u.created_at, u.last_active
		FROM users u
		LEFT JOIN cities c ON u.city_id = c.id
		LEFT JOIN states s ON c.state_id = s.id
		LEFT JOIN countries co ON s.country_id = co.id
		WHERE u.id = $1
	`, id).Scan(&p.ID, &p.Username, &p.Email, &p.Bio, &p.PhoneNumber, &p.ProfileImageURL,
		&p.IsVerified, &p.CityName, &p.StateName, &p.CountryName,
		&p.ListingCount, &p.AverageRating, &p.ReviewCount, &p.CreatedAt, &p.LastActive)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (r *UserRepository) Reviews(ctx context.Context, userID int64) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.reviewer_id, r.reviewed_id, r.rating, r.comment,
		       u.username, u.profile_image_url, r.created_at
		FROM reviews r
		JOIN users u ON r.reviewer_id = u.id
		WHERE r.reviewed_id = $1
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ReviewerID, &rv.ReviewedID, &rv.Rating, &rv.Comment,
			&rv.ReviewerName, &rv.ReviewerImage, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *UserRepository) Stats(ctx context.Context, userID int64) (model.UserStats, error) {
	var s model.UserStats
	err := r.pool.QueryRow(ctx, `
		SELECT
		    (SELECT COUNT(*) FROM products WHERE user_id = $1),
		    (SELECT COUNT(*) FROM orders WHERE seller_id = $1),
		    (SELECT COUNT(*) FROM orders WHERE buyer_id = $1),
		    (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviewed_id = $1),
		    (SELECT COUNT(*) FROM reviews WHERE reviewed_id = $1)
	`, userID).Scan(&s.TotalListings, &s.TotalSales, &s.TotalPurchases, &s.AverageRating, &s.TotalReviews)
	if err != nil {
		return model.UserStats{}, fmt.Errorf("load user stats: %w", err)
	}
	return s, nil
}

func (r *UserRepository) AverageRating(ctx context.Context, userID int64) (float64, error) {
	var rating float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviewed_id = $1`, userID).Scan(&rating)
	if err != nil {
		return 0, fmt.Errorf("load average rating: %w", err)
	}
	return rating, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
