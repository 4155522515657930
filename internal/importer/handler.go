package importer

import (
	"errors"
	"net/http"

	"smartler/internal/catalog"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Single-restaurant import
// --------------------------------------------------
func (h *Handler) ImportMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	actor := c.GetString("userEmail")

	var payload MenuPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	stats, err := h.service.ImportMenu(c.Request.Context(), actor, restaurantID, &payload)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrInvalidPayload):
			status = http.StatusBadRequest
		case errors.Is(err, catalog.ErrNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// --------------------------------------------------
// System-wide import
// --------------------------------------------------
func (h *Handler) ImportSystemMenu(c *gin.Context) {
	actor := c.GetString("userEmail")

	var payload SystemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	stats, err := h.service.ImportSystemMenu(c.Request.Context(), actor, &payload)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
