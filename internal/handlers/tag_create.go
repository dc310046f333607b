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

// TagCreator defines the interface that the service must implement.
type TagCreator interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.TagDB, error)
}

// TagRequest represents the JSON body for tag creation and update. There is
// no owner field: the owner is always the authenticated caller.
// swagger:model TagRequest
type TagRequest struct {
	// Tag name
	// required: true
	// default: Vegan
	Name string `json:"name"`
}

// NewTagCreateHandler returns an HTTP handler for tag creation.
// @Summary Create a tag
// @Description Persists a new tag owned by the authenticated caller.
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tagRequest body handlers.TagRequest true "Tag creation request"
// @Success 201 {object} handlers.TagResponse "Created tag"
// @Failure 400 {object} handlers.ErrorResponse "Missing name / invalid request"
// @Failure 401 "Unauthenticated"
// @Router /tags [post]
func NewTagCreateHandler(svc TagCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		tag, err := svc.Create(r.Context(), userID, req.Name)
		if err != nil {
			switch {
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

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newTagResponse(tag))
	}
}
