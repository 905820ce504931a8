package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type createReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int64  `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

func (h *Handlers) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
		return
	}

	review, err := h.Reviews.Create(
		c.Request.Context(),
		userID,
		model.Role(currentRole(c)),
		bookingID,
		req.Rating,
		req.Comment,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *Handlers) ProviderReviews(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid provider id"})
		return
	}

	reviews, err := h.Reviews.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
