// handlers/property.go
package handlers

import (
	"net/http"

	"estatehub/internal/models"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyService PropertyService
}

func NewPropertyHandler(propertyService PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// GetProperties godoc
// @Summary List properties
// @Description List properties matching the query filters; results are cached per filter
// @Tags Properties
// @Produce json
// @Param search query string false "Title contains (case-insensitive)"
// @Param type query string false "house, apartment, condo or townhouse"
// @Param city query string false "Exact city"
// @Param state query string false "Exact state"
// @Param listingType query string false "sale or rent"
// @Param furnished query bool false "Furnished"
// @Param isVerified query bool false "Verified listing"
// @Param bedrooms query number false "Minimum bedrooms"
// @Param bathrooms query number false "Minimum bathrooms"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minArea query number false "Minimum area (sq ft)"
// @Param maxArea query number false "Maximum area (sq ft)"
// @Param rating query number false "Exact rating"
// @Success 200 {array} models.Property
// @Failure 400 {object} map[string]interface{}
// @Router /properties [get]
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	properties, err := h.propertyService.QueryProperties(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetPropertyByID godoc
// @Summary Get property by ID
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	property, err := h.propertyService.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty godoc
// @Summary Create a new property
// @Description The authenticated user becomes the owner
// @Tags Properties
// @Accept json
// @Produce json
// @Param property body models.PropertyInput true "Property data"
// @Security BearerAuth
// @Success 201 {object} models.Property
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var input models.PropertyInput
	if !bindJSON(c, &input) {
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), userID, &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty godoc
// @Summary Update a property
// @Description Partial update; only the owner may update
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param property body models.PropertyUpdate true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} models.Property
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var update models.PropertyUpdate
	if !bindJSON(c, &update) {
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), userID, c.Param("id"), &update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteProperty godoc
// @Summary Delete a property
// @Tags Properties
// @Param id path string true "Property ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.propertyService.DeleteProperty(c.Request.Context(), userID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
