package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationService RecommendationService
}

func NewRecommendationHandler(recommendationService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

type RecommendRequest struct {
	RecipientEmail string `json:"recipientEmail" binding:"required"`
	PropertyID     string `json:"propertyId" binding:"required"`
	Message        string `json:"message"`
}

// Recommend godoc
// @Summary Recommend a property to another user
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param body body RecommendRequest true "Recipient and property"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /recommendations [post]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req RecommendRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.recommendationService.Recommend(c.Request.Context(), userID, req.RecipientEmail, req.PropertyID, req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recommendation sent", "recommendation": entry})
}

// GetReceived godoc
// @Summary Inbox of recommendations received by the current user
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ReceivedRecommendation
// @Router /recommendations/received [get]
func (h *RecommendationHandler) GetReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	received, err := h.recommendationService.ListReceived(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, received)
}

func (h *RecommendationHandler) GetSent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sent, err := h.recommendationService.ListSent(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sent)
}

func (h *RecommendationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recommendationService.MarkRead(c.Request.Context(), userID, c.Param("recommendationId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
