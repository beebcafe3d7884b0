package store

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"pottyspotty/internal/models"
)

func inBoundsFilter(b models.Bounds) bson.M {
	return bson.M{
		"location.coordinates": bson.M{
			"$geoWithin": bson.M{
				"$box": bson.A{
					bson.A{b.MinLng, b.MinLat},
					bson.A{b.MaxLng, b.MaxLat},
				},
			},
		},
	}
}

func nearbyFilter(lat, lng, maxDistanceKm float64) bson.M {
	return bson.M{
		"location.coordinates": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": bson.A{lng, lat},
				},
				"$maxDistance": maxDistanceKm * 1000,
			},
		},
	}
}

// existsFilter matches on the normalized key, or on anchored case-insensitive
// regexes for documents written before the key existed.
func existsFilter(name, street, city string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"dedupKey": models.DedupKey(name, street, city)},
			bson.M{
				"dedupKey":       bson.M{"$exists": false},
				"name":           anchoredCI(name),
				"address.street": anchoredCI(street),
				"address.city":   anchoredCI(city),
			},
		},
	}
}

func anchoredCI(value string) bson.M {
	return bson.M{
		"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		"$options": "i",
	}
}
