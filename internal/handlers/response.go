package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/dkorchagin/recipe-api/internal/models"
)

// ErrorResponse is the JSON error body returned by all endpoints
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// RecipeSummary is the recipe shape returned by list, create and update
// swagger:model RecipeSummary
type RecipeSummary struct {
	// Recipe ID
	ID int64 `json:"id"`

	// Recipe title
	// default: Sample recipe
	Title string `json:"title"`

	// Preparation time in minutes
	// default: 30
	TimeMinutes int `json:"time_minutes"`

	// Price as a fixed-point decimal string
	// default: "5.99"
	Price decimal.Decimal `json:"price"`

	// Source URL
	Link string `json:"link"`
}

// RecipeDetail is the recipe shape returned by single-item retrieval; it adds
// the description to the summary shape
// swagger:model RecipeDetail
type RecipeDetail struct {
	RecipeSummary

	// Recipe description
	Description string `json:"description"`
}

// TagResponse is the tag shape returned by all tag endpoints
// swagger:model TagResponse
type TagResponse struct {
	// Tag ID
	ID int64 `json:"id"`

	// Tag name
	// default: Vegan
	Name string `json:"name"`
}

func newRecipeSummary(r *models.RecipeDB) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func newRecipeDetail(r *models.RecipeDB) RecipeDetail {
	return RecipeDetail{
		RecipeSummary: newRecipeSummary(r),
		Description:   r.Description,
	}
}

func newTagResponse(t *models.TagDB) TagResponse {
	return TagResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}
