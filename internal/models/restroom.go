package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentsLength is the longest comments value a restroom may carry.
const MaxCommentsLength = 400

// Address is the postal address of a restroom.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
}

// Restroom is the persisted restroom document.
type Restroom struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Address          Address            `bson:"address" json:"address"`
	Location         *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	IsAccessible     bool               `bson:"isAccessible" json:"isAccessible"`
	HasChangingTable bool               `bson:"hasChangingTable" json:"hasChangingTable"`
	IsGenderNeutral  bool               `bson:"isGenderNeutral" json:"isGenderNeutral"`
	Comments         string             `bson:"comments,omitempty" json:"comments,omitempty"`
	DedupKey         string             `bson:"dedupKey,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MissingFields lists the required fields that are blank, using their json paths.
func (r Restroom) MissingFields() []string {
	missing := make([]string, 0)
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Address.Street) == "" {
		missing = append(missing, "address.street")
	}
	if strings.TrimSpace(r.Address.City) == "" {
		missing = append(missing, "address.city")
	}
	if strings.TrimSpace(r.Address.State) == "" {
		missing = append(missing, "address.state")
	}
	return missing
}

// DedupKey normalizes the (name, street, city) triple that identifies a
// restroom for duplicate detection.
func DedupKey(name, street, city string) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(name)),
		strings.ToLower(strings.TrimSpace(street)),
		strings.ToLower(strings.TrimSpace(city)),
	}
	return strings.Join(parts, "\x1f")
}
