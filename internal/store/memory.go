package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pottyspotty/internal/models"
)

// MemoryStore is an in-process RestroomStore with the same query semantics
// as MongoStore. It is selected with STORE_BACKEND=memory and loses its data
// on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	restrooms []models.Restroom
	now       func() time.Time
}

var _ RestroomStore = (*MemoryStore)(nil)

// NewMemoryStore panics if a seed restroom is invalid or duplicated.
func NewMemoryStore(seed ...models.Restroom) *MemoryStore {
	s := &MemoryStore{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, r := range seed {
		if _, err := s.Insert(context.Background(), &r); err != nil {
			panic(fmt.Sprintf("seed restroom %q: %v", r.Name, err))
		}
	}
	return s
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) ListAll(context.Context) ([]models.Restroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Restroom, len(s.restrooms))
	copy(out, s.restrooms)
	return out, nil
}

func (s *MemoryStore) ListInBounds(_ context.Context, bounds models.Bounds) ([]models.Restroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	out := make([]models.Restroom, 0)
	for _, r := range s.restrooms {
		if r.Location != nil && bounds.Contains(*r.Location) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListNearby(_ context.Context, lat, lng, maxDistanceKm float64, limit int) ([]models.Restroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	maxDistanceKm, limit, err := NearbyParams(lat, lng, maxDistanceKm, limit)
	if err != nil {
		return nil, err
	}

	type hit struct {
		restroom models.Restroom
		distance float64
	}
	hits := make([]hit, 0)
	for _, r := range s.restrooms {
		if r.Location == nil {
			continue
		}
		d := models.DistanceKm(lat, lng, r.Location.Lat(), r.Location.Lon())
		if d <= maxDistanceKm {
			hits = append(hits, hit{restroom: r, distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]models.Restroom, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.restroom)
	}
	return out, nil
}

func (s *MemoryStore) Exists(_ context.Context, name, street, city string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(models.DedupKey(name, street, city)) >= 0, nil
}

func (s *MemoryStore) Insert(_ context.Context, restroom *models.Restroom) (models.Restroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(*restroom)
}

// ReplaceAll matches MongoStore: every record is validated before the old data
// is dropped, and a duplicate row is skipped without stopping the rest.
func (s *MemoryStore) ReplaceAll(_ context.Context, restrooms []models.Restroom) (int, error) {
	for _, r := range restrooms {
		r.Name = strings.TrimSpace(r.Name)
		if err := validateRecord(r); err != nil {
			return 0, fmt.Errorf("restroom %q: %w", r.Name, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.restrooms = nil
	inserted, duplicates := 0, 0
	for _, r := range restrooms {
		if _, err := s.insertLocked(r); err != nil {
			duplicates++
			continue
		}
		inserted++
	}
	if duplicates > 0 {
		return inserted, fmt.Errorf("%w: %d rows skipped", ErrDuplicate, duplicates)
	}
	return inserted, nil
}

func (s *MemoryStore) insertLocked(r models.Restroom) (models.Restroom, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := validateRecord(r); err != nil {
		return models.Restroom{}, err
	}

	key := models.DedupKey(r.Name, r.Address.Street, r.Address.City)
	if s.indexOf(key) >= 0 {
		return models.Restroom{}, ErrDuplicate
	}

	now := s.now()
	r.ID = primitive.NewObjectID()
	r.DedupKey = key
	r.CreatedAt = now
	r.UpdatedAt = now
	s.restrooms = append(s.restrooms, r)
	return r, nil
}

func (s *MemoryStore) indexOf(key string) int {
	for i, r := range s.restrooms {
		if r.DedupKey == key {
			return i
		}
	}
	return -1
}
