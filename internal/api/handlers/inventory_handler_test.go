package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/bakeshop-backend/internal/domain"
)

type stubInventoryLister struct {
	ingredients []domain.Ingredient
	lowStock    []domain.Ingredient
	err         error
}

func (s *stubInventoryLister) ListIngredients(context.Context) ([]domain.Ingredient, error) {
	return s.ingredients, s.err
}

func (s *stubInventoryLister) ListLowStock(context.Context) ([]domain.Ingredient, error) {
	return s.lowStock, s.err
}

func newInventoryRouter(stub *stubInventoryLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewInventoryHandler(stub)
	router.GET("/inventory/ingredients", handler.ListIngredients)
	router.GET("/inventory/low_stock", handler.ListLowStock)
	return router
}

func TestListIngredients(t *testing.T) {
	stub := &stubInventoryLister{
		ingredients: []domain.Ingredient{
			{ID: 1, Name: "Flour", Quantity: 25, Threshold: 10, Unit: "kg"},
			{ID: 2, Name: "Butter", Quantity: 8, Threshold: 10, Unit: "kg"},
		},
	}
	router := newInventoryRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/ingredients", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []domain.Ingredient `json:"data"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "Flour", body.Data[0].Name)
}

func TestListLowStock(t *testing.T) {
	stub := &stubInventoryLister{
		lowStock: []domain.Ingredient{
			{ID: 2, Name: "Butter", Quantity: 8, Threshold: 10, Unit: "kg"},
		},
	}
	router := newInventoryRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/low_stock", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []domain.Ingredient `json:"data"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Butter", body.Data[0].Name)
}

func TestListIngredientsFailure(t *testing.T) {
	stub := &stubInventoryLister{err: errors.New("db unreachable")}
	router := newInventoryRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/ingredients", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
