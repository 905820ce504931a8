package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/service"
)

type providerProfileRequest struct {
	BusinessName    string          `json:"businessName"`
	Description     string          `json:"description"`
	ServiceTypes    json.RawMessage `json:"serviceTypes"`
	HourlyRate      float64         `json:"hourlyRate" binding:"required"`
	ExperienceYears int64           `json:"experienceYears"`
	Location        json.RawMessage `json:"location"`
}

func (r providerProfileRequest) toInput() service.ProviderProfileInput {
	return service.ProviderProfileInput{
		BusinessName:    r.BusinessName,
		Description:     r.Description,
		ServiceTypes:    datatypes.JSON(r.ServiceTypes),
		HourlyRate:      r.HourlyRate,
		ExperienceYears: r.ExperienceYears,
		Location:        datatypes.JSON(r.Location),
	}
}

func (h *Handlers) CreateProviderProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}

	var req providerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.Providers.CreateProfile(c.Request.Context(), userID, model.Role(currentRole(c)), req.toInput())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handlers) UpdateProviderProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid session"})
		return
	}

	var req providerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.Providers.UpdateProfile(c.Request.Context(), userID, req.toInput())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handlers) GetProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid provider id"})
		return
	}

	p, err := h.Providers.Get(c.Request.Context(), providerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handlers) ListProviders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.Providers.List(c.Request.Context(), page, size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
