package geocoding

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"pottyspotty/internal/models"
)

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Nominatim geocodes US addresses against an OpenStreetMap Nominatim server.
type Nominatim struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration, logger *zap.Logger) *Nominatim {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Nominatim{
		httpClient: client,
		logger:     logger,
	}
}

func (n *Nominatim) Geocode(ctx context.Context, addr models.Address) (*models.GeoPoint, error) {
	query := FormatQuery(addr)

	var results []nominatimResult
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":            query,
			"format":       "json",
			"limit":        "1",
			"countrycodes": "us",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		n.logger.Warn("geocoding request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	if resp.IsError() {
		n.logger.Warn("geocoding API error", zap.String("query", query), zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("geocoding API error: %d", resp.StatusCode())
	}

	if len(results) == 0 {
		n.logger.Info("geocoding returned no match", zap.String("query", query))
		return nil, nil
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoding lon %q: %w", results[0].Lon, err)
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoding lat %q: %w", results[0].Lat, err)
	}

	point, err := models.NewGeoPoint(lon, lat)
	if err != nil {
		return nil, err
	}

	n.logger.Debug("geocoded address",
		zap.String("query", query),
		zap.String("display_name", results[0].DisplayName),
		zap.Float64("lon", lon),
		zap.Float64("lat", lat),
	)
	return &point, nil
}
