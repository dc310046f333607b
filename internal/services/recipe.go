package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/models"
	"github.com/dkorchagin/recipe-api/internal/repositories"
)

var (
	// ErrNotFound is returned when a record does not exist or is owned by a
	// different user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrTitleRequired is returned when a recipe is created or fully updated
	// without a title.
	ErrTitleRequired = errors.New("title is required")
)

// RecipeReader defines read-only operations for recipes, always owner-scoped.
type RecipeReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.RecipeDB, error)
}

// RecipeWriter defines write operations for recipes, always owner-scoped.
type RecipeWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title string, timeMinutes int, price decimal.Decimal, description, link string) (*models.RecipeDB, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, upd repositories.RecipeUpdate) (*models.RecipeDB, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
}

// RecipeService handles owner-scoped recipe CRUD.
type RecipeService struct {
	reader RecipeReader
	writer RecipeWriter
	audit  *AuditPublisher
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(reader RecipeReader, writer RecipeWriter, audit *AuditPublisher) *RecipeService {
	return &RecipeService{
		reader: reader,
		writer: writer,
		audit:  audit,
	}
}

// List returns the caller's recipes, newest first.
func (svc *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error) {
	return svc.reader.ListByUser(ctx, userID)
}

// Get returns one recipe owned by the caller, or ErrNotFound.
func (svc *RecipeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.RecipeDB, error) {
	recipe, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrNotFound
	}
	return recipe, nil
}

// Create persists a new recipe owned by the caller.
func (svc *RecipeService) Create(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	timeMinutes int,
	price decimal.Decimal,
	description, link string,
) (*models.RecipeDB, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	recipe, err := svc.writer.Save(ctx, userID, title, timeMinutes, price, description, link)
	if err != nil {
		logger.Log.Errorw("failed to save recipe", "err", err)
		return nil, err
	}

	svc.audit.Publish(ctx, EventRecipeCreated, strconv.FormatInt(recipe.ID, 10), recipe)

	return recipe, nil
}

// UpdatePartial applies the non-nil fields of upd to the caller's recipe.
// The owner is never part of the update.
func (svc *RecipeService) UpdatePartial(ctx context.Context, userID uuid.UUID, id int64, upd repositories.RecipeUpdate) (*models.RecipeDB, error) {
	if upd.Title != nil && *upd.Title == "" {
		return nil, ErrTitleRequired
	}

	recipe, err := svc.writer.Update(ctx, userID, id, upd)
	if err != nil {
		logger.Log.Errorw("failed to update recipe", "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	svc.audit.Publish(ctx, EventRecipeUpdated, strconv.FormatInt(recipe.ID, 10), recipe)

	return recipe, nil
}

// UpdateFull replaces all mutable fields of the caller's recipe. Omitted
// optional fields are expected to arrive as their zero values.
func (svc *RecipeService) UpdateFull(
	ctx context.Context,
	userID uuid.UUID,
	id int64,
	title string,
	timeMinutes int,
	price decimal.Decimal,
	description, link string,
) (*models.RecipeDB, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	upd := repositories.RecipeUpdate{
		Title:       &title,
		TimeMinutes: &timeMinutes,
		Price:       &price,
		Description: &description,
		Link:        &link,
	}

	recipe, err := svc.writer.Update(ctx, userID, id, upd)
	if err != nil {
		logger.Log.Errorw("failed to update recipe", "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	svc.audit.Publish(ctx, EventRecipeUpdated, strconv.FormatInt(recipe.ID, 10), recipe)

	return recipe, nil
}

// Delete removes the caller's recipe, or returns ErrNotFound.
func (svc *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	deleted, err := svc.writer.Delete(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to delete recipe", "err", err)
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	svc.audit.Publish(ctx, EventRecipeDeleted, strconv.FormatInt(id, 10), map[string]int64{"id": id})

	return nil
}
