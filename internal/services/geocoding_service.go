package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/chronica/backend/internal/config"
)

const (
	unknownCountry = "Unknown Country"
	unknownCity    = "Unknown City"
)

// GeocodingService resolves coordinates to a country and city via the
// Nominatim reverse endpoint. Location enrichment is cosmetic, so every
// failure degrades to placeholder strings instead of propagating.
type GeocodingService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewGeocodingService(cfg *config.Config) *GeocodingService {
	return &GeocodingService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Location is a best-effort human-readable place.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// ReverseGeocode looks up lat/lon. Never returns an error; on any failure the
// placeholders are used.
func (s *GeocodingService) ReverseGeocode(ctx context.Context, lat, lon float64) Location {
	fallback := Location{Country: unknownCountry, City: unknownCity}

	url := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f&zoom=10&addressdetails=1",
		s.cfg.GeocodingBaseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Reverse geocoding request build failed: %v", err)
		return fallback
	}
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", s.cfg.GeocodingUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Reverse geocoding failed: %v", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Reverse geocoding returned status %d", resp.StatusCode)
		return fallback
	}

	var payload struct {
		Address struct {
			Country string `json:"country"`
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Reverse geocoding decode failed: %v", err)
		return fallback
	}

	loc := fallback
	if payload.Address.Country != "" {
		loc.Country = payload.Address.Country
	}
	switch {
	case payload.Address.City != "":
		loc.City = payload.Address.City
	case payload.Address.Town != "":
		loc.City = payload.Address.Town
	case payload.Address.Village != "":
		loc.City = payload.Address.Village
	}
	return loc
}
