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

// RecipeGetter defines the interface that the service must implement.
type RecipeGetter interface {
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.RecipeDB, error)
}

// NewRecipeGetHandler returns an HTTP handler for single recipe retrieval.
// @Summary Get recipe detail
// @Description Returns one recipe owned by the caller, including its description. A foreign-owned recipe yields 404 like a missing one.
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} handlers.RecipeDetail "Recipe detail"
// @Failure 401 "Unauthenticated"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipes/{id} [get]
func NewRecipeGetHandler(svc RecipeGetter) http.HandlerFunc {
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

		recipe, err := svc.Get(r.Context(), userID, id)
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
		json.NewEncoder(w).Encode(newRecipeDetail(recipe))
	}
}
