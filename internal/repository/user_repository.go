package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// UserRepository provides access to user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID fetches a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email)); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs batch-loads users for eager loading.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

// ExistsByEmail checks whether an account already uses email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`, strings.TrimSpace(email))
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return found, nil
}

// insertUser creates the account row inside the caller's transaction.
func insertUser(ctx context.Context, ext sqlx.ExtContext, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES (:name, :email, :password_hash, :created_at, :updated_at) RETURNING id`
	id, err := insertReturningID(ctx, ext, query, user)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return nil
}
