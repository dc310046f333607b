package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dkorchagin/recipe-api/internal/models"
	"github.com/dkorchagin/recipe-api/internal/repositories"
	"github.com/dkorchagin/recipe-api/internal/services"
)

func TestRecipeService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	recipes := []models.RecipeDB{
		{ID: 2, UserID: userID, Title: "Second"},
		{ID: 1, UserID: userID, Title: "First"},
	}

	mockReader := services.NewMockRecipeReader(ctrl)
	mockReader.EXPECT().ListByUser(gomock.Any(), userID).Return(recipes, nil)

	svc := services.NewRecipeService(mockReader, services.NewMockRecipeWriter(ctrl), nil)

	got, err := svc.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, recipes, got)
}

func TestRecipeService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name    string
		recipe  *models.RecipeDB
		readErr error
		wantErr error
	}{
		{
			name:   "found",
			recipe: &models.RecipeDB{ID: 7, UserID: userID, Title: "Curry"},
		},
		{
			name:    "missing or foreign recipe is not found",
			recipe:  nil,
			wantErr: services.ErrNotFound,
		},
		{
			name:    "reader error",
			readErr: errors.New("db error"),
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockRecipeReader(ctrl)
			mockReader.EXPECT().GetByID(gomock.Any(), userID, int64(7)).Return(tt.recipe, tt.readErr)

			svc := services.NewRecipeService(mockReader, services.NewMockRecipeWriter(ctrl), nil)

			got, err := svc.Get(context.Background(), userID, 7)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.recipe, got)
		})
	}
}

func TestRecipeService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	price := decimal.RequireFromString("5.99")

	t.Run("success", func(t *testing.T) {
		mockWriter := services.NewMockRecipeWriter(ctrl)
		mockWriter.EXPECT().
			Save(gomock.Any(), userID, "Pancakes", 15, price, "Fluffy", "http://example.com").
			Return(&models.RecipeDB{ID: 1, UserID: userID, Title: "Pancakes", TimeMinutes: 15, Price: price}, nil)

		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), mockWriter, nil)

		recipe, err := svc.Create(context.Background(), userID, "Pancakes", 15, price, "Fluffy", "http://example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), recipe.ID)
		assert.Equal(t, "Pancakes", recipe.Title)
	})

	t.Run("empty title", func(t *testing.T) {
		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), services.NewMockRecipeWriter(ctrl), nil)

		recipe, err := svc.Create(context.Background(), userID, "", 15, price, "", "")
		assert.ErrorIs(t, err, services.ErrTitleRequired)
		assert.Nil(t, recipe)
	})
}

func TestRecipeService_UpdatePartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	title := "Updated"

	t.Run("success", func(t *testing.T) {
		upd := repositories.RecipeUpdate{Title: &title}

		mockWriter := services.NewMockRecipeWriter(ctrl)
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, int64(3), upd).
			Return(&models.RecipeDB{ID: 3, UserID: userID, Title: title}, nil)

		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), mockWriter, nil)

		recipe, err := svc.UpdatePartial(context.Background(), userID, 3, upd)
		assert.NoError(t, err)
		assert.Equal(t, title, recipe.Title)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		blank := ""
		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), services.NewMockRecipeWriter(ctrl), nil)

		recipe, err := svc.UpdatePartial(context.Background(), userID, 3, repositories.RecipeUpdate{Title: &blank})
		assert.ErrorIs(t, err, services.ErrTitleRequired)
		assert.Nil(t, recipe)
	})

	t.Run("missing recipe", func(t *testing.T) {
		mockWriter := services.NewMockRecipeWriter(ctrl)
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, int64(3), gomock.Any()).
			Return(nil, nil)

		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), mockWriter, nil)

		recipe, err := svc.UpdatePartial(context.Background(), userID, 3, repositories.RecipeUpdate{Title: &title})
		assert.ErrorIs(t, err, services.ErrNotFound)
		assert.Nil(t, recipe)
	})
}

func TestRecipeService_UpdateFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	price := decimal.RequireFromString("12.50")

	t.Run("replaces every mutable field", func(t *testing.T) {
		mockWriter := services.NewMockRecipeWriter(ctrl)
		mockWriter.EXPECT().
			Update(gomock.Any(), userID, int64(4), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int64, upd repositories.RecipeUpdate) (*models.RecipeDB, error) {
				// A full update must touch all five fields, including the
				// optional ones reset to empty.
				assert.Equal(t, "Stew", *upd.Title)
				assert.Equal(t, 90, *upd.TimeMinutes)
				assert.True(t, price.Equal(*upd.Price))
				assert.Equal(t, "", *upd.Description)
				assert.Equal(t, "", *upd.Link)
				return &models.RecipeDB{ID: 4, UserID: userID, Title: "Stew", TimeMinutes: 90, Price: price}, nil
			})

		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), mockWriter, nil)

		recipe, err := svc.UpdateFull(context.Background(), userID, 4, "Stew", 90, price, "", "")
		assert.NoError(t, err)
		assert.Equal(t, "Stew", recipe.Title)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), services.NewMockRecipeWriter(ctrl), nil)

		recipe, err := svc.UpdateFull(context.Background(), userID, 4, "", 90, price, "", "")
		assert.ErrorIs(t, err, services.ErrTitleRequired)
		assert.Nil(t, recipe)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name    string
		deleted bool
		delErr  error
		wantErr error
	}{
		{name: "deleted", deleted: true},
		{name: "missing or foreign recipe is not found", deleted: false, wantErr: services.ErrNotFound},
		{name: "writer error", delErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWriter := services.NewMockRecipeWriter(ctrl)
			mockWriter.EXPECT().Delete(gomock.Any(), userID, int64(5)).Return(tt.deleted, tt.delErr)

			svc := services.NewRecipeService(services.NewMockRecipeReader(ctrl), mockWriter, nil)

			err := svc.Delete(context.Background(), userID, 5)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}
