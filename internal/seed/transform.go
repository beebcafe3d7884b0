// Package seed loads the bundled restroom export into the store format.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pottyspotty/internal/models"
)

// RawRestroom is one row of the upstream restroom export.
type RawRestroom struct {
	Name          string  `json:"name"`
	Street        string  `json:"street"`
	City          string  `json:"city"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Accessible    bool    `json:"accessible"`
	Unisex        bool    `json:"unisex"`
	ChangingTable bool    `json:"changing_table"`
	Directions    string  `json:"directions"`
	Comment       string  `json:"comment"`
}

func Decode(r io.Reader) ([]RawRestroom, error) {
	var rows []RawRestroom
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return rows, nil
}

// Transform converts export rows to restrooms. Rows without a usable name,
// street, city or location are skipped and reported by index.
func Transform(rows []RawRestroom, state string) ([]models.Restroom, []int) {
	out := make([]models.Restroom, 0, len(rows))
	skipped := make([]int, 0)

	for i, row := range rows {
		point, err := models.NewGeoPoint(row.Longitude, row.Latitude)
		if err != nil {
			skipped = append(skipped, i)
			continue
		}

		r := models.Restroom{
			Name: strings.TrimSpace(row.Name),
			Address: models.Address{
				Street: strings.TrimSpace(row.Street),
				City:   strings.TrimSpace(row.City),
				State:  state,
			},
			Location:         &point,
			IsAccessible:     row.Accessible,
			HasChangingTable: row.ChangingTable,
			IsGenderNeutral:  row.Unisex,
			Comments:         combineComments(row.Directions, row.Comment),
		}
		if len(r.MissingFields()) > 0 {
			skipped = append(skipped, i)
			continue
		}
		out = append(out, r)
	}
	return out, skipped
}

func combineComments(directions, comment string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{directions, comment} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	combined := []rune(strings.Join(parts, " | "))
	if len(combined) > models.MaxCommentsLength {
		combined = combined[:models.MaxCommentsLength]
	}
	return string(combined)
}

// Dedupe drops rows whose (name, street, city) triple was already seen.
func Dedupe(restrooms []models.Restroom) []models.Restroom {
	seen := make(map[string]struct{}, len(restrooms))
	out := make([]models.Restroom, 0, len(restrooms))
	for _, r := range restrooms {
		key := models.DedupKey(r.Name, r.Address.Street, r.Address.City)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
