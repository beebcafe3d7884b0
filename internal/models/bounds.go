package models

import "fmt"

// Bounds is an inclusive latitude/longitude rectangle.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

func (b Bounds) Validate() error {
	if !ValidLatitude(b.MinLat) || !ValidLatitude(b.MaxLat) {
		return fmt.Errorf("latitude bounds out of range")
	}
	if !ValidLongitude(b.MinLng) || !ValidLongitude(b.MaxLng) {
		return fmt.Errorf("longitude bounds out of range")
	}
	if b.MinLat > b.MaxLat {
		return fmt.Errorf("minLat must not exceed maxLat")
	}
	if b.MinLng > b.MaxLng {
		return fmt.Errorf("minLng must not exceed maxLng")
	}
	return nil
}

// Contains reports whether p lies inside the rectangle, edges included.
func (b Bounds) Contains(p GeoPoint) bool {
	lat, lng := p.Lat(), p.Lon()
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}
