package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/middlewares"
	"github.com/dkorchagin/recipe-api/internal/models"
)

// TagLister defines the interface that the service must implement.
type TagLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.TagDB, error)
}

// NewTagListHandler returns an HTTP handler listing the caller's tags.
// @Summary List tags
// @Description Returns all tags owned by the authenticated caller, ordered by name descending.
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.TagResponse "Caller's tags"
// @Failure 401 "Unauthenticated"
// @Router /tags [get]
func NewTagListHandler(svc TagLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		tags, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		resp := make([]TagResponse, 0, len(tags))
		for i := range tags {
			resp = append(resp, newTagResponse(&tags[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
