package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/models"
)

const userColumns = `user_id, email, password_hash, name, is_active, is_staff, is_superuser, created_at, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given (already normalized) email,
// or nil when no such user exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, email)

	logger.Log.Debugw("user select",
		"query", strings.Join(strings.Fields(query), " "),
		"email", email,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil when no such user exists.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, userID)

	logger.Log.Debugw("user select",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns all users ordered by email.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY email
	`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &users, query)

	logger.Log.Debugw("user list",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user record and returns it with generated fields.
func (r *UserWriteRepository) Save(
	ctx context.Context,
	email, passwordHash, name string,
	isStaff, isSuperuser bool,
) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (email, password_hash, name, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns + `
	`
	args := []any{email, passwordHash, name, isStaff, isSuperuser}

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, args...)

	logger.Log.Debugw("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"email", email,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Update rewrites a user's mutable attributes. A nil passwordHash leaves the
// stored hash untouched. Returns the updated record, or nil when no such user
// exists.
func (r *UserWriteRepository) Update(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	isActive, isStaff, isSuperuser bool,
	passwordHash *string,
) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET name = $2,
		    is_active = $3,
		    is_staff = $4,
		    is_superuser = $5,
		    password_hash = COALESCE($6, password_hash),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns + `
	`
	args := []any{userID, name, isActive, isStaff, isSuperuser, passwordHash}

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, args...)

	logger.Log.Debugw("user update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
