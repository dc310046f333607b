package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/middlewares"
	"github.com/dkorchagin/recipe-api/internal/models"
	"github.com/dkorchagin/recipe-api/internal/services"
)

// TagUpdater defines the interface that the service must implement.
type TagUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.TagDB, error)
}

// NewTagUpdateHandler returns an HTTP handler renaming a tag. A tag has a
// single mutable field, so PATCH and PUT share this handler.
// @Summary Update a tag
// @Description Renames the caller's tag. The owner cannot be reassigned.
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param tagRequest body handlers.TagRequest true "Tag update request"
// @Success 200 {object} handlers.TagResponse "Updated tag"
// @Failure 400 {object} handlers.ErrorResponse "Missing name / invalid request"
// @Failure 401 "Unauthenticated"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /tags/{id} [patch]
func NewTagUpdateHandler(svc TagUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		id, err := parseID(r)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "not found",
			})
			return
		}

		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		tag, err := svc.Update(r.Context(), userID, id, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "not found",
				})
			case errors.Is(err, services.ErrNameRequired):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: err.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newTagResponse(tag))
	}
}
