package models

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0088

	pointType = "Point"
)

// GeoPoint is a GeoJSON point. Coordinates are stored as [longitude, latitude].
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a point from a longitude/latitude pair.
func NewGeoPoint(lon, lat float64) (GeoPoint, error) {
	p := GeoPoint{Type: pointType, Coordinates: [2]float64{lon, lat}}
	if !p.Valid() {
		return GeoPoint{}, fmt.Errorf("invalid point lon=%v lat=%v", lon, lat)
	}
	return p, nil
}

func (p GeoPoint) Lon() float64 { return p.Coordinates[0] }

func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// Valid reports whether the point is a GeoJSON Point with in-range coordinates.
func (p GeoPoint) Valid() bool {
	if p.Type != pointType {
		return false
	}
	return ValidLongitude(p.Lon()) && ValidLatitude(p.Lat())
}

func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// DistanceKm returns the great-circle distance between two lat/lng pairs.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
