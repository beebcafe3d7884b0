package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"pottyspotty/internal/models"
)

var errInvalidParam = errors.New("invalid query parameter")

func parseFloatParam(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", errInvalidParam, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", errInvalidParam, name)
	}
	return v, nil
}

// parseDistanceParam reads an optional radius in km. Only an absent value
// falls back; zero and negative radii are rejected.
func parseDistanceParam(name, raw string, fallback float64) (float64, error) {
	v, err := parseOptionalFloatParam(name, raw, fallback)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be greater than 0", errInvalidParam, name)
	}
	return v, nil
}

func parseOptionalFloatParam(name, raw string, fallback float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parseFloatParam(name, raw)
}

func parseOptionalIntParam(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errInvalidParam, name)
	}
	return v, nil
}

// parseBoundsList parses "minLat,maxLat,minLng,maxLng".
func parseBoundsList(raw string) (models.Bounds, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return models.Bounds{}, fmt.Errorf("%w: bounds must be minLat,maxLat,minLng,maxLng", errInvalidParam)
	}
	return parseBounds(parts[0], parts[1], parts[2], parts[3])
}

func parseBounds(minLat, maxLat, minLng, maxLng string) (models.Bounds, error) {
	var b models.Bounds
	var err error
	if b.MinLat, err = parseFloatParam("minLat", minLat); err != nil {
		return models.Bounds{}, err
	}
	if b.MaxLat, err = parseFloatParam("maxLat", maxLat); err != nil {
		return models.Bounds{}, err
	}
	if b.MinLng, err = parseFloatParam("minLng", minLng); err != nil {
		return models.Bounds{}, err
	}
	if b.MaxLng, err = parseFloatParam("maxLng", maxLng); err != nil {
		return models.Bounds{}, err
	}
	return b, nil
}
