package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/models"
)

// ErrNameRequired is returned when a tag is created or updated without a name.
var ErrNameRequired = errors.New("name is required")

// TagReader defines read-only operations for tags, always owner-scoped.
type TagReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TagDB, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.TagDB, error)
}

// TagWriter defines write operations for tags, always owner-scoped.
type TagWriter interface {
	Save(ctx context.Context, userID uuid.UUID, name string) (*models.TagDB, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.TagDB, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) (bool, error)
}

// TagService handles owner-scoped tag CRUD.
type TagService struct {
	reader TagReader
	writer TagWriter
	audit  *AuditPublisher
}

// NewTagService creates a new TagService instance.
func NewTagService(reader TagReader, writer TagWriter, audit *AuditPublisher) *TagService {
	return &TagService{
		reader: reader,
		writer: writer,
		audit:  audit,
	}
}

// List returns the caller's tags ordered by name descending.
func (svc *TagService) List(ctx context.Context, userID uuid.UUID) ([]models.TagDB, error) {
	return svc.reader.ListByUser(ctx, userID)
}

// Get returns one tag owned by the caller, or ErrNotFound.
func (svc *TagService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.TagDB, error) {
	tag, err := svc.reader.GetByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to get tag", "err", err)
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Create persists a new tag owned by the caller.
func (svc *TagService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.TagDB, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	tag, err := svc.writer.Save(ctx, userID, name)
	if err != nil {
		logger.Log.Errorw("failed to save tag", "err", err)
		return nil, err
	}

	svc.audit.Publish(ctx, EventTagCreated, strconv.FormatInt(tag.ID, 10), tag)

	return tag, nil
}

// Update renames the caller's tag, or returns ErrNotFound.
func (svc *TagService) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.TagDB, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	tag, err := svc.writer.Update(ctx, userID, id, name)
	if err != nil {
		logger.Log.Errorw("failed to update tag", "err", err)
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}

	svc.audit.Publish(ctx, EventTagUpdated, strconv.FormatInt(tag.ID, 10), tag)

	return tag, nil
}

// Delete removes the caller's tag, or returns ErrNotFound.
func (svc *TagService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	deleted, err := svc.writer.Delete(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to delete tag", "err", err)
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	svc.audit.Publish(ctx, EventTagDeleted, strconv.FormatInt(id, 10), map[string]int64{"id": id})

	return nil
}
