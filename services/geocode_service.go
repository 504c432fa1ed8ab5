package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrAddressNotFound is returned when the geocoder has no result for an
// address. Match creation treats it as a validation failure: nothing is
// written.
var ErrAddressNotFound = errors.New("address not found")

// GeocoderAPI resolves a free-text address into map coordinates.
type GeocoderAPI interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// GeocodeService talks to a Nominatim-style HTTP geocoding endpoint.
type GeocodeService struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeocodeService(baseURL string) *GeocodeService {
	return &GeocodeService{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Geocode looks up the first result for the address. The endpoint returns
// a JSON array ordered by relevance; an empty array means no match.
func (g *GeocodeService) Geocode(ctx context.Context, address string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.BaseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	return lat, lng, nil
}
