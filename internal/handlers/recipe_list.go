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

// RecipeLister defines the interface that the service must implement.
type RecipeLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.RecipeDB, error)
}

// NewRecipeListHandler returns an HTTP handler listing the caller's recipes.
// @Summary List recipes
// @Description Returns all recipes owned by the authenticated caller, newest first.
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.RecipeSummary "Caller's recipes"
// @Failure 401 "Unauthenticated"
// @Router /recipes [get]
func NewRecipeListHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		recipes, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		resp := make([]RecipeSummary, 0, len(recipes))
		for i := range recipes {
			resp = append(resp, newRecipeSummary(&recipes[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
