package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chronica/backend/internal/services"
)

type GeoHandler struct {
	geocoding *services.GeocodingService
}

func NewGeoHandler(geocoding *services.GeocodingService) *GeoHandler {
	return &GeoHandler{geocoding: geocoding}
}

// ReverseGeocode resolves coordinates to a country and city
// GET /api/v1/geocode/reverse?lat=..&lon=..
func (h *GeoHandler) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "lat and lon query parameters are required"})
		return
	}

	location := h.geocoding.ReverseGeocode(c.Request.Context(), lat, lon)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": location})
}
