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

const tagColumns = `id, user_id, name, created_at, updated_at`

type TagReadRepository struct {
	db *sqlx.DB
}

func NewTagReadRepository(db *sqlx.DB) *TagReadRepository {
	return &TagReadRepository{db: db}
}

// ListByUser returns the user's tags ordered by name descending.
func (r *TagReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TagDB, error) {
	const query = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE user_id = $1
		ORDER BY name DESC
	`

	tags := []models.TagDB{}
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &tags, query, userID)

	logger.Log.Debugw("tag list",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"count", len(tags),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return tags, nil
}

// GetByID returns the tag with the given id if it is owned by userID, nil otherwise.
func (r *TagReadRepository) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.TagDB, error) {
	const query = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE id = $1 AND user_id = $2
	`

	var tag models.TagDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &tag, query, id, userID)

	logger.Log.Debugw("tag select",
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

	return &tag, nil
}

type TagWriteRepository struct {
	db *sqlx.DB
}

func NewTagWriteRepository(db *sqlx.DB) *TagWriteRepository {
	return &TagWriteRepository{db: db}
}

// Save inserts a new tag owned by userID and returns it with the generated id.
func (r *TagWriteRepository) Save(ctx context.Context, userID uuid.UUID, name string) (*models.TagDB, error) {
	const query = `
		INSERT INTO tags (user_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + tagColumns + `
	`

	var tag models.TagDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &tag, query, userID, name)

	logger.Log.Debugw("tag insert",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"name", name,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &tag, nil
}

// Update renames the tag, scoped to its owner. Returns nil when the tag does
// not exist or belongs to someone else.
func (r *TagWriteRepository) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.TagDB, error) {
	const query = `
		UPDATE tags
		SET name = $3,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + tagColumns + `
	`

	var tag models.TagDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &tag, query, id, userID, name)

	logger.Log.Debugw("tag update",
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

	return &tag, nil
}

// Delete removes the tag, scoped to its owner. Returns false when nothing was
// deleted.
func (r *TagWriteRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error) {
	const query = `
		DELETE FROM tags
		WHERE id = $1 AND user_id = $2
	`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("tag delete",
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
