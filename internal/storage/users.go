package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// UserStore is the PostgreSQL account store.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore returns a user store backed by the pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userSelect = `
	SELECT id, name, email, password_hash, phone, user_type, skills, categories,
	       experience, availability, address, city, state, pincode, latitude, longitude,
	       bio, verified, rating, review_count, completed_jobs, created_at, updated_at
	FROM users`

func scanUser(sc rowScanner) (*models.User, error) {
	var (
		u        models.User
		lat, lng *float64
	)
	err := sc.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.UserType, &u.Skills, &u.Categories,
		&u.Experience, &u.Availability,
		&u.Location.Address, &u.Location.City, &u.Location.State, &u.Location.Pincode, &lat, &lng,
		&u.Bio, &u.Verified, &u.Rating, &u.ReviewCount, &u.CompletedJobs, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		u.Location.Coordinates = &models.Coordinates{Latitude: *lat, Longitude: *lng}
	}
	return &u, nil
}

// Create inserts a new account. A taken email surfaces as a duplicate error.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	var lat, lng *float64
	if c := user.Location.Coordinates; c != nil {
		lat, lng = &c.Latitude, &c.Longitude
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, phone, user_type, skills, categories,
		                    experience, availability, address, city, state, pincode, latitude, longitude,
		                    bio, verified, rating, review_count, completed_jobs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		         $17, $18, $19, $20, $21, $22, $23)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone, user.UserType, user.Skills, user.Categories,
		user.Experience, user.Availability,
		user.Location.Address, user.Location.City, user.Location.State, user.Location.Pincode, lat, lng,
		user.Bio, user.Verified, user.Rating, user.ReviewCount, user.CompletedJobs, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return utils.NewDuplicateError("An account with this email already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns one account by id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := s.pool.QueryRow(ctx, userSelect+` WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetByEmail returns the account with the given email, or (nil, nil) when no
// such account exists.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.pool.QueryRow(ctx, userSelect+` WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// Update persists the profile fields of an account. Aggregates (rating,
// review_count, completed_jobs) are written elsewhere.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	var lat, lng *float64
	if c := user.Location.Coordinates; c != nil {
		lat, lng = &c.Latitude, &c.Longitude
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET name = $2, phone = $3, skills = $4, categories = $5, experience = $6,
		     availability = $7, address = $8, city = $9, state = $10, pincode = $11,
		     latitude = $12, longitude = $13, bio = $14, updated_at = $15
		 WHERE id = $1`,
		user.ID, user.Name, user.Phone, user.Skills, user.Categories, user.Experience,
		user.Availability,
		user.Location.Address, user.Location.City, user.Location.State, user.Location.Pincode,
		lat, lng, user.Bio, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("User not found")
	}
	return nil
}

// IncrementCompletedJobs bumps a worker's completed-jobs counter by one.
func (s *UserStore) IncrementCompletedJobs(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET completed_jobs = completed_jobs + 1, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("increment completed jobs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("User not found")
	}
	return nil
}

// ListWorkers returns all worker accounts, best rated first.
func (s *UserStore) ListWorkers(ctx context.Context) ([]models.User, error) {
	return s.queryUsers(ctx, userSelect+` WHERE user_type = 'worker' ORDER BY rating DESC, created_at DESC`)
}

// SearchWorkers returns worker accounts matching the filter, best rated first.
func (s *UserStore) SearchWorkers(ctx context.Context, f models.WorkerFilter) ([]models.User, error) {
	query := userSelect + ` WHERE user_type = 'worker'`
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND $%d = ANY(categories)", len(args))
	}
	if len(f.Skills) > 0 {
		args = append(args, f.Skills)
		query += fmt.Sprintf(" AND skills && $%d", len(args))
	}
	if f.City != "" {
		args = append(args, "%"+strings.TrimSpace(f.City)+"%")
		query += fmt.Sprintf(" AND city ILIKE $%d", len(args))
	}
	if f.Availability != "" {
		args = append(args, f.Availability)
		query += fmt.Sprintf(" AND availability = $%d", len(args))
	}
	query += ` ORDER BY rating DESC, created_at DESC`

	return s.queryUsers(ctx, query, args...)
}

func (s *UserStore) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users query: %w", err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users scan: %w", err)
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}
