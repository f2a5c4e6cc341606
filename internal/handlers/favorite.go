package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService FavoriteService
}

func NewFavoriteHandler(favoriteService FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type AddFavoriteRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// AddFavorite godoc
// @Summary Add a property to favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param body body AddFavoriteRequest true "Property to add"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /favorites [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req AddFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	set, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, req.PropertyID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites", "favorites": set.Favorites})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	set, err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, c.Param("propertyId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites", "favorites": set.Favorites})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	properties, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, properties)
}
