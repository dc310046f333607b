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
	"github.com/dkorchagin/recipe-api/internal/repositories"
	"github.com/dkorchagin/recipe-api/internal/services"
)

// RecipeUpdater defines the interface that the service must implement.
type RecipeUpdater interface {
	UpdatePartial(ctx context.Context, userID uuid.UUID, id int64, upd repositories.RecipeUpdate) (*models.RecipeDB, error)
	UpdateFull(ctx context.Context, userID uuid.UUID, id int64, title string, timeMinutes int, price decimal.Decimal, description, link string) (*models.RecipeDB, error)
}

// RecipeUpdateRequest represents the JSON body for partial and full recipe
// updates. All fields are optional for PATCH; PUT requires title, time_minutes
// and price. The owner is not part of the payload, so a client-supplied owner
// key is dropped by the decoder and the owner never changes.
// swagger:model RecipeUpdateRequest
type RecipeUpdateRequest struct {
	// Recipe title
	Title *string `json:"title"`

	// Preparation time in minutes
	TimeMinutes *int `json:"time_minutes"`

	// Price as a fixed-point decimal string
	Price *decimal.Decimal `json:"price"`

	// Recipe description
	Description *string `json:"description"`

	// Source URL
	Link *string `json:"link"`
}

// NewRecipePartialUpdateHandler returns an HTTP handler for PATCH updates:
// fields missing from the payload are left untouched.
// @Summary Partially update a recipe
// @Description Applies the supplied subset of mutable fields to the caller's recipe. Omitted fields keep their values; the owner cannot be reassigned.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param recipeUpdateRequest body handlers.RecipeUpdateRequest true "Fields to update"
// @Success 200 {object} handlers.RecipeSummary "Updated recipe"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 "Unauthenticated"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipes/{id} [patch]
func NewRecipePartialUpdateHandler(svc RecipeUpdater) http.HandlerFunc {
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

		var req RecipeUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		upd := repositories.RecipeUpdate{
			Title:       req.Title,
			TimeMinutes: req.TimeMinutes,
			Price:       req.Price,
			Description: req.Description,
			Link:        req.Link,
		}

		recipe, err := svc.UpdatePartial(r.Context(), userID, id, upd)
		if err != nil {
			writeRecipeUpdateError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newRecipeSummary(recipe))
	}
}

// NewRecipeFullUpdateHandler returns an HTTP handler for PUT updates: all
// mutable fields are replaced, omitted optional fields revert to defaults.
// @Summary Fully update a recipe
// @Description Replaces all mutable fields of the caller's recipe. Title, time_minutes and price are required; omitted description and link reset to empty. The owner cannot be reassigned.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param recipeUpdateRequest body handlers.RecipeUpdateRequest true "Replacement fields"
// @Success 200 {object} handlers.RecipeSummary "Updated recipe"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields / invalid request"
// @Failure 401 "Unauthenticated"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipes/{id} [put]
func NewRecipeFullUpdateHandler(svc RecipeUpdater) http.HandlerFunc {
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

		var req RecipeUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if req.Title == nil || req.TimeMinutes == nil || req.Price == nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "title, time_minutes and price are required",
			})
			return
		}

		// Omitted optional fields reset to their schema defaults.
		var description, link string
		if req.Description != nil {
			description = *req.Description
		}
		if req.Link != nil {
			link = *req.Link
		}

		recipe, err := svc.UpdateFull(r.Context(), userID, id, *req.Title, *req.TimeMinutes, *req.Price, description, link)
		if err != nil {
			writeRecipeUpdateError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newRecipeSummary(recipe))
	}
}

func writeRecipeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: "not found",
		})
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
}
