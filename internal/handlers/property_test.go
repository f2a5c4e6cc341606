package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/handlers"
	"estatehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func propertyRouter(svc *MockPropertyService, asUser string) http.Handler {
	h := handlers.NewPropertyHandler(svc)
	r := newTestRouter(asUser)
	r.GET("/properties", h.GetProperties)
	r.GET("/properties/:id", h.GetPropertyByID)
	r.POST("/properties", h.CreateProperty)
	r.PUT("/properties/:id", h.UpdateProperty)
	r.DELETE("/properties/:id", h.DeleteProperty)
	return r
}

func TestGetProperties_PassesQueryThrough(t *testing.T) {
	svc := new(MockPropertyService)
	listing := models.Property{ID: primitive.NewObjectID(), Title: "Loft", Price: 100}
	svc.On("QueryProperties", mock.Anything, mock.MatchedBy(func(v url.Values) bool {
		return v.Get("city") == "Austin" && v.Get("minPrice") == "50"
	})).Return([]models.Property{listing}, nil)

	w := doJSON(propertyRouter(svc, ""), http.MethodGet, "/properties?minPrice=50&city=Austin", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, listing.ID, got[0].ID)
	svc.AssertExpectations(t)
}

func TestGetProperties_InvalidFilter(t *testing.T) {
	svc := new(MockPropertyService)
	svc.On("QueryProperties", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: minPrice must be a number", apperrors.ErrInvalidFilter))

	w := doJSON(propertyRouter(svc, ""), http.MethodGet, "/properties?minPrice=cheap", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidFilter, errorCode(t, w))
}

func TestGetPropertyByID_NotFound(t *testing.T) {
	svc := new(MockPropertyService)
	svc.On("GetProperty", mock.Anything, "missing").Return(nil, apperrors.ErrPropertyNotFound)

	w := doJSON(propertyRouter(svc, ""), http.MethodGet, "/properties/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodePropertyNotFound, errorCode(t, w))
}

func TestCreateProperty(t *testing.T) {
	svc := new(MockPropertyService)
	created := &models.Property{ID: primitive.NewObjectID(), Title: "Cabin"}
	svc.On("CreateProperty", mock.Anything, testUserID, mock.MatchedBy(func(in *models.PropertyInput) bool {
		return in.Title == "Cabin" && in.Price == 250000
	})).Return(created, nil)

	w := doJSON(propertyRouter(svc, testUserID), http.MethodPost, "/properties",
		map[string]interface{}{"title": "Cabin", "price": 250000})

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateProperty_RequiresUser(t *testing.T) {
	svc := new(MockPropertyService)

	w := doJSON(propertyRouter(svc, ""), http.MethodPost, "/properties", map[string]interface{}{"title": "Cabin"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeUnauthenticated, errorCode(t, w))
	svc.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProperty_MalformedBody(t *testing.T) {
	svc := new(MockPropertyService)

	w := doJSON(propertyRouter(svc, testUserID), http.MethodPost, "/properties", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeValidation, errorCode(t, w))
}

func TestUpdateProperty_NotOwner(t *testing.T) {
	svc := new(MockPropertyService)
	svc.On("UpdateProperty", mock.Anything, testUserID, "p1", mock.Anything).
		Return(nil, fmt.Errorf("update property: %w", apperrors.ErrUnauthorized))

	w := doJSON(propertyRouter(svc, testUserID), http.MethodPut, "/properties/p1", map[string]interface{}{"price": 10})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, errorCode(t, w))
}

func TestDeleteProperty(t *testing.T) {
	svc := new(MockPropertyService)
	svc.On("DeleteProperty", mock.Anything, testUserID, "p1").Return(nil)

	w := doJSON(propertyRouter(svc, testUserID), http.MethodDelete, "/properties/p1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Property deleted"}`, w.Body.String())
}
