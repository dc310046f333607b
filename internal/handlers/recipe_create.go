package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/middlewares"
	"github.com/dkorchagin/recipe-api/internal/models"
	"github.com/dkorchagin/recipe-api/internal/services"
)

// RecipeCreator defines the interface that the service must implement.
type RecipeCreator interface {
	Create(ctx context.Context, userID uuid.UUID, title string, timeMinutes int, price decimal.Decimal, description, link string) (*models.RecipeDB, error)
}

// RecipeCreateRequest represents the JSON body for recipe creation. There is
// no owner field: the owner is always the authenticated caller.
// swagger:model RecipeCreateRequest
type RecipeCreateRequest struct {
	// Recipe title
	// required: true
	// default: Sample recipe
	Title string `json:"title"`

	// Preparation time in minutes
	// default: 30
	TimeMinutes int `json:"time_minutes"`

	// Price as a fixed-point decimal string
	// default: "5.99"
	Price decimal.Decimal `json:"price"`

	// Recipe description
	Description string `json:"description"`

	// Source URL
	Link string `json:"link"`
}

// NewRecipeCreateHandler returns an HTTP handler for recipe creation.
// @Summary Create a recipe
// @Description Persists a new recipe owned by the authenticated caller.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipeCreateRequest body handlers.RecipeCreateRequest true "Recipe creation request"
// @Success 201 {object} handlers.RecipeSummary "Created recipe"
// @Failure 400 {object} handlers.ErrorResponse "Missing title / invalid request"
// @Failure 401 "Unauthenticated"
// @Router /recipes [post]
func NewRecipeCreateHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middlewares.GetUserIDFromContext(r.Context())

		var req RecipeCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		recipe, err := svc.Create(r.Context(), userID, req.Title, req.TimeMinutes, req.Price, req.Description, req.Link)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTitleRequired):
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
		json.NewEncoder(w).Encode(newRecipeSummary(recipe))
	}
}
