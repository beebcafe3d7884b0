package geocoding

import (
	"context"
	"strings"

	"pottyspotty/internal/models"
)

// Geocoder resolves a postal address to a point. A nil point with a nil error
// means the provider had no match.
type Geocoder interface {
	Geocode(ctx context.Context, addr models.Address) (*models.GeoPoint, error)
}

// FormatQuery renders an address as "street, city, state[, zip], USA".
func FormatQuery(addr models.Address) string {
	parts := []string{
		strings.TrimSpace(addr.Street),
		strings.TrimSpace(addr.City),
		strings.TrimSpace(addr.State),
	}
	if zip := strings.TrimSpace(addr.ZipCode); zip != "" {
		parts = append(parts, zip)
	}
	parts = append(parts, "USA")
	return strings.Join(parts, ", ")
}
