package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/service"
)

type createBookingRequest struct {
	ServiceProviderID string          `json:"serviceProviderId" binding:"required"`
	ServiceType       string          `json:"serviceType" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	Location          json.RawMessage `json:"location" binding:"required"`
	ScheduledDate     string          `json:"scheduledDate" binding:"required"` // "2006-01-02"
	ScheduledTime     string          `json:"scheduledTime" binding:"required"` // "HH:MM"
	EstimatedHours    float64         `json:"estimatedHours" binding:"required"`
	IsEmergency       bool            `json:"isEmergency"`
}

func (h *Handlers) CreateBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	providerID, err := uuid.Parse(req.ServiceProviderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid service provider id"})
		return
	}
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "scheduled date must be YYYY-MM-DD"})
		return
	}

	b, err := h.Bookings.Create(c.Request.Context(), userID, model.Role(currentRole(c)), service.CreateBookingInput{
		ProviderID:     providerID,
		ServiceType:    req.ServiceType,
		Description:    req.Description,
		Location:       datatypes.JSON(req.Location),
		ScheduledDate:  date,
		ScheduledTime:  req.ScheduledTime,
		EstimatedHours: req.EstimatedHours,
		IsEmergency:    req.IsEmergency,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *Handlers) MyBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.Bookings.ListForUser(c.Request.Context(), userID, model.Role(currentRole(c)), page, size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) GetBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
		return
	}

	b, err := h.Bookings.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid booking id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	b, err := h.Bookings.TransitionStatus(
		c.Request.Context(),
		bookingID,
		model.BookingStatus(req.Status),
		userID,
		model.Role(currentRole(c)),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
