package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dkorchagin/recipe-api/internal/handlers"
	"github.com/dkorchagin/recipe-api/internal/middlewares"
	"github.com/dkorchagin/recipe-api/internal/models"
	"github.com/dkorchagin/recipe-api/internal/repositories"
	"github.com/dkorchagin/recipe-api/internal/services"
)

// newRecipeRouter mounts the recipe routes with a fixed authenticated caller,
// mirroring the production route tree.
func newRecipeRouter(
	userID uuid.UUID,
	lister handlers.RecipeLister,
	creator handlers.RecipeCreator,
	getter handlers.RecipeGetter,
	updater handlers.RecipeUpdater,
	deleter handlers.RecipeDeleter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middlewares.SetUserIDToContext(req.Context(), userID)))
		})
	})
	r.Get("/recipes", handlers.NewRecipeListHandler(lister))
	r.Post("/recipes", handlers.NewRecipeCreateHandler(creator))
	r.Get("/recipes/{id}", handlers.NewRecipeGetHandler(getter))
	r.Patch("/recipes/{id}", handlers.NewRecipePartialUpdateHandler(updater))
	r.Put("/recipes/{id}", handlers.NewRecipeFullUpdateHandler(updater))
	r.Delete("/recipes/{id}", handlers.NewRecipeDeleteHandler(deleter))
	return r
}

func TestRecipeListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	mockLister := handlers.NewMockRecipeLister(ctrl)
	mockLister.EXPECT().
		List(gomock.Any(), userID).
		Return([]models.RecipeDB{
			{ID: 2, UserID: userID, Title: "Second", TimeMinutes: 30, Price: decimal.RequireFromString("7.50"), Description: "hidden in lists"},
			{ID: 1, UserID: userID, Title: "First", TimeMinutes: 10, Price: decimal.RequireFromString("5.00")},
		}, nil)

	router := newRecipeRouter(userID, mockLister, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Summaries only: the description never shows up in list responses.
	assert.JSONEq(t, `[
		{"id":2,"title":"Second","time_minutes":30,"price":"7.50","link":""},
		{"id":1,"title":"First","time_minutes":10,"price":"5.00","link":""}
	]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hidden in lists")
}

func TestRecipeCreateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		price := decimal.RequireFromString("5.99")

		mockCreator := handlers.NewMockRecipeCreator(ctrl)
		mockCreator.EXPECT().
			Create(gomock.Any(), userID, "Pancakes", 15, gomock.Any(), "Fluffy", "").
			Return(&models.RecipeDB{ID: 1, UserID: userID, Title: "Pancakes", TimeMinutes: 15, Price: price, Description: "Fluffy"}, nil)

		router := newRecipeRouter(userID, nil, mockCreator, nil, nil, nil)

		body := `{"title":"Pancakes","time_minutes":15,"price":"5.99","description":"Fluffy"}`
		req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"title":"Pancakes","time_minutes":15,"price":"5.99","link":""}`, rec.Body.String())
	})

	t.Run("missing title", func(t *testing.T) {
		mockCreator := handlers.NewMockRecipeCreator(ctrl)
		mockCreator.EXPECT().
			Create(gomock.Any(), userID, "", 0, gomock.Any(), "", "").
			Return(nil, services.ErrTitleRequired)

		router := newRecipeRouter(userID, nil, mockCreator, nil, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"title is required"}`, rec.Body.String())
	})
}

func TestRecipeGetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("detail includes description", func(t *testing.T) {
		mockGetter := handlers.NewMockRecipeGetter(ctrl)
		mockGetter.EXPECT().
			Get(gomock.Any(), userID, int64(5)).
			Return(&models.RecipeDB{ID: 5, UserID: userID, Title: "Curry", TimeMinutes: 45, Price: decimal.RequireFromString("9.99"), Description: "Spicy", Link: "http://example.com"}, nil)

		router := newRecipeRouter(userID, nil, nil, mockGetter, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/recipes/5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":5,"title":"Curry","time_minutes":45,"price":"9.99","description":"Spicy","link":"http://example.com"}`, rec.Body.String())
	})

	t.Run("foreign or missing recipe is 404", func(t *testing.T) {
		mockGetter := handlers.NewMockRecipeGetter(ctrl)
		mockGetter.EXPECT().
			Get(gomock.Any(), userID, int64(5)).
			Return(nil, services.ErrNotFound)

		router := newRecipeRouter(userID, nil, nil, mockGetter, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/recipes/5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		router := newRecipeRouter(userID, nil, nil, handlers.NewMockRecipeGetter(ctrl), nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/recipes/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRecipePartialUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("only supplied fields are updated", func(t *testing.T) {
		mockUpdater := handlers.NewMockRecipeUpdater(ctrl)
		mockUpdater.EXPECT().
			UpdatePartial(gomock.Any(), userID, int64(3), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int64, upd repositories.RecipeUpdate) (*models.RecipeDB, error) {
				assert.Equal(t, "Renamed", *upd.Title)
				assert.Nil(t, upd.TimeMinutes)
				assert.Nil(t, upd.Price)
				assert.Nil(t, upd.Description)
				assert.Nil(t, upd.Link)
				return &models.RecipeDB{ID: 3, UserID: userID, Title: "Renamed", TimeMinutes: 20, Price: decimal.RequireFromString("4.00")}, nil
			})

		router := newRecipeRouter(userID, nil, nil, nil, mockUpdater, nil)

		req := httptest.NewRequest(http.MethodPatch, "/recipes/3", strings.NewReader(`{"title":"Renamed"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":3,"title":"Renamed","time_minutes":20,"price":"4.00","link":""}`, rec.Body.String())
	})

	t.Run("client-supplied owner key is dropped", func(t *testing.T) {
		mockUpdater := handlers.NewMockRecipeUpdater(ctrl)
		mockUpdater.EXPECT().
			UpdatePartial(gomock.Any(), userID, int64(3), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int64, upd repositories.RecipeUpdate) (*models.RecipeDB, error) {
				assert.Equal(t, "Renamed", *upd.Title)
				return &models.RecipeDB{ID: 3, UserID: userID, Title: "Renamed"}, nil
			})

		router := newRecipeRouter(userID, nil, nil, nil, mockUpdater, nil)

		// The payload has no owner field, so the extra key is ignored.
		body := `{"title":"Renamed","user":"` + uuid.NewString() + `"}`
		req := httptest.NewRequest(http.MethodPatch, "/recipes/3", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign or missing recipe is 404", func(t *testing.T) {
		mockUpdater := handlers.NewMockRecipeUpdater(ctrl)
		mockUpdater.EXPECT().
			UpdatePartial(gomock.Any(), userID, int64(3), gomock.Any()).
			Return(nil, services.ErrNotFound)

		router := newRecipeRouter(userID, nil, nil, nil, mockUpdater, nil)

		req := httptest.NewRequest(http.MethodPatch, "/recipes/3", strings.NewReader(`{"title":"Renamed"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRecipeFullUpdateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("omitted optional fields reset", func(t *testing.T) {
		mockUpdater := handlers.NewMockRecipeUpdater(ctrl)
		mockUpdater.EXPECT().
			UpdateFull(gomock.Any(), userID, int64(4), "Stew", 90, gomock.Any(), "", "").
			Return(&models.RecipeDB{ID: 4, UserID: userID, Title: "Stew", TimeMinutes: 90, Price: decimal.RequireFromString("12.50")}, nil)

		router := newRecipeRouter(userID, nil, nil, nil, mockUpdater, nil)

		body := `{"title":"Stew","time_minutes":90,"price":"12.50"}`
		req := httptest.NewRequest(http.MethodPut, "/recipes/4", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":4,"title":"Stew","time_minutes":90,"price":"12.50","link":""}`, rec.Body.String())
	})

	t.Run("missing required fields", func(t *testing.T) {
		router := newRecipeRouter(userID, nil, nil, nil, handlers.NewMockRecipeUpdater(ctrl), nil)

		req := httptest.NewRequest(http.MethodPut, "/recipes/4", strings.NewReader(`{"title":"Stew"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"title, time_minutes and price are required"}`, rec.Body.String())
	})
}

func TestRecipeDeleteHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mockDeleter := handlers.NewMockRecipeDeleter(ctrl)
		mockDeleter.EXPECT().Delete(gomock.Any(), userID, int64(5)).Return(nil)

		router := newRecipeRouter(userID, nil, nil, nil, nil, mockDeleter)

		req := httptest.NewRequest(http.MethodDelete, "/recipes/5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("foreign or missing recipe is 404", func(t *testing.T) {
		mockDeleter := handlers.NewMockRecipeDeleter(ctrl)
		mockDeleter.EXPECT().Delete(gomock.Any(), userID, int64(5)).Return(services.ErrNotFound)

		router := newRecipeRouter(userID, nil, nil, nil, nil, mockDeleter)

		req := httptest.NewRequest(http.MethodDelete, "/recipes/5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
