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

// TagGetter defines the interface that the service must implement.
type TagGetter interface {
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.TagDB, error)
}

// NewTagGetHandler returns an HTTP handler for single tag retrieval.
// @Summary Get a tag
// @Description Returns one tag owned by the caller. A foreign-owned tag yields 404 like a missing one.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} handlers.TagResponse "Tag"
// @Failure 401 "Unauthenticated"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /tags/{id} [get]
func NewTagGetHandler(svc TagGetter) http.HandlerFunc {
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

		tag, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "not found",
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
