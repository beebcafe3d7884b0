package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"pottyspotty/internal/models"
)

const (
	DefaultNearbyDistanceKm = 10.0
	MaxNearbyResults        = 50
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation error")
	ErrDuplicate       = errors.New("duplicate restroom")
	ErrPersistence     = errors.New("persistence error")
)

// RestroomStore is the persistent restroom collection.
type RestroomStore interface {
	Ping(ctx context.Context) error
	ListAll(ctx context.Context) ([]models.Restroom, error)
	ListInBounds(ctx context.Context, bounds models.Bounds) ([]models.Restroom, error)
	// ListNearby returns restrooms within maxDistanceKm of (lat, lng), nearest
	// first. A zero maxDistanceKm selects the default radius; limit is clamped to
	// MaxNearbyResults.
	ListNearby(ctx context.Context, lat, lng, maxDistanceKm float64, limit int) ([]models.Restroom, error)
	Exists(ctx context.Context, name, street, city string) (bool, error)
	Insert(ctx context.Context, restroom *models.Restroom) (models.Restroom, error)
	ReplaceAll(ctx context.Context, restrooms []models.Restroom) (int, error)
}

// NearbyParams normalizes the radius and result cap of a nearby query. A zero
// radius means unset; NaN, infinite and negative radii are rejected.
func NearbyParams(lat, lng, maxDistanceKm float64, limit int) (float64, int, error) {
	if !models.ValidLatitude(lat) || !models.ValidLongitude(lng) {
		return 0, 0, fmt.Errorf("%w: lat/lng out of range", ErrInvalidArgument)
	}
	if math.IsNaN(maxDistanceKm) || math.IsInf(maxDistanceKm, 0) || maxDistanceKm < 0 {
		return 0, 0, fmt.Errorf("%w: maxDistance must be a positive number", ErrInvalidArgument)
	}
	if maxDistanceKm == 0 {
		maxDistanceKm = DefaultNearbyDistanceKm
	}
	if limit <= 0 || limit > MaxNearbyResults {
		limit = MaxNearbyResults
	}
	return maxDistanceKm, limit, nil
}

// validateRecord enforces the persistence-time invariants of a restroom.
func validateRecord(r models.Restroom) error {
	if missing := r.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	if r.Location != nil && !r.Location.Valid() {
		return fmt.Errorf("%w: invalid location", ErrValidation)
	}
	if len([]rune(r.Comments)) > models.MaxCommentsLength {
		return fmt.Errorf("%w: comments exceed %d characters", ErrValidation, models.MaxCommentsLength)
	}
	return nil
}
