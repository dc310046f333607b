package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/middlewares"
	"github.com/dkorchagin/recipe-api/internal/services"
)

// TagDeleter defines the interface that the service must implement.
type TagDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// NewTagDeleteHandler returns an HTTP handler for tag deletion.
// @Summary Delete a tag
// @Description Removes the caller's tag. A foreign-owned tag yields 404 and stays untouched.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204 "Deleted"
// @Failure 401 "Unauthenticated"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /tags/{id} [delete]
func NewTagDeleteHandler(svc TagDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, id); err != nil {
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

		w.WriteHeader(http.StatusNoContent)
	}
}
