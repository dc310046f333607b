package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/models"
)

const recipeColumns = `id, user_id, title, time_minutes, price, description, link, created_at, updated_at`

// RecipeUpdate carries the mutable recipe fields for an update. Nil fields are
// left untouched; the owner is never part of an update.
type RecipeUpdate struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
	Link        *string
}

type RecipeReadRepository struct {
	db *sqlx.DB
}

func NewRecipeReadRepository(db *sqlx.DB) *RecipeReadRepository {
	return &RecipeReadRepository{db: db}
}

// ListByUser returns the user's recipes, newest first.
func (r *RecipeReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error) {
	const query = `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE user_id = $1
		ORDER BY id DESC
	`

	recipes := []models.RecipeDB{}
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &recipes, query, userID)

	logger.Log.Debugw("recipe list",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"count", len(recipes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// GetByID returns the recipe with the given id if it is owned by userID.
// A missing row and a foreign-owned row are indistinguishable: both yield nil.
func (r *RecipeReadRepository) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.RecipeDB, error) {
	const query = `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &recipe, query, id, userID)

	logger.Log.Debugw("recipe select",
		"query", strings.Join(strings.Fields(query), " "),
		"id", id,
		"user_id", userID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

type RecipeWriteRepository struct {
	db *sqlx.DB
}

func NewRecipeWriteRepository(db *sqlx.DB) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db}
}

// Save inserts a new recipe owned by userID and returns it with the generated id.
func (r *RecipeWriteRepository) Save(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	timeMinutes int,
	price decimal.Decimal,
	description, link string,
) (*models.RecipeDB, error) {
	const query = `
		INSERT INTO recipes (user_id, title, time_minutes, price, description, link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + recipeColumns + `
	`
	args := []any{userID, title, timeMinutes, price, description, link}

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &recipe, query, args...)

	logger.Log.Debugw("recipe insert",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// Update applies the non-nil fields of upd to the recipe, scoped to its owner.
// Returns nil when the recipe does not exist or belongs to someone else.
func (r *RecipeWriteRepository) Update(
	ctx context.Context,
	userID uuid.UUID,
	id int64,
	upd RecipeUpdate,
) (*models.RecipeDB, error) {
	const query = `
		UPDATE recipes
		SET title = COALESCE($3, title),
		    time_minutes = COALESCE($4, time_minutes),
		    price = COALESCE($5, price),
		    description = COALESCE($6, description),
		    link = COALESCE($7, link),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + recipeColumns + `
	`

	// decimal.Decimal implements driver.Valuer on the value receiver, so a
	// nil pointer has to be turned into an untyped nil by hand.
	var price any
	if upd.Price != nil {
		price = *upd.Price
	}
	args := []any{id, userID, upd.Title, upd.TimeMinutes, price, upd.Description, upd.Link}

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &recipe, query, args...)

	logger.Log.Debugw("recipe update",
		"query", strings.Join(strings.Fields(query), " "),
		"id", id,
		"user_id", userID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// Delete removes the recipe, scoped to its owner. Returns false when nothing
// was deleted.
func (r *RecipeWriteRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	const query = `
		DELETE FROM recipes
		WHERE id = $1 AND user_id = $2
	`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("recipe delete",
		"query", strings.Join(strings.Fields(query), " "),
		"id", id,
		"user_id", userID,
		"rows", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
