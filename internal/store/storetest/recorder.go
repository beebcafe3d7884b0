// Package storetest wraps a store.RestroomStore with call counting and
// failure injection for tests of code built on top of the store.
package storetest

import (
	"context"
	"sync"

	"pottyspotty/internal/models"
	"pottyspotty/internal/store"
)

// Recorder forwards to the wrapped store, counting calls per method. After
// FailWith, every call returns the injected error without reaching the store.
type Recorder struct {
	next store.RestroomStore

	mu    sync.Mutex
	calls map[string]int
	err   error
}

var _ store.RestroomStore = (*Recorder)(nil)

func Wrap(next store.RestroomStore) *Recorder {
	return &Recorder{next: next, calls: map[string]int{}}
}

// Calls reports how often method was invoked.
func (r *Recorder) Calls(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) record(method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[method]++
	return r.err
}

func (r *Recorder) Ping(ctx context.Context) error {
	if err := r.record("Ping"); err != nil {
		return err
	}
	return r.next.Ping(ctx)
}

func (r *Recorder) ListAll(ctx context.Context) ([]models.Restroom, error) {
	if err := r.record("ListAll"); err != nil {
		return nil, err
	}
	return r.next.ListAll(ctx)
}

func (r *Recorder) ListInBounds(ctx context.Context, bounds models.Bounds) ([]models.Restroom, error) {
	if err := r.record("ListInBounds"); err != nil {
		return nil, err
	}
	return r.next.ListInBounds(ctx, bounds)
}

func (r *Recorder) ListNearby(ctx context.Context, lat, lng, maxDistanceKm float64, limit int) ([]models.Restroom, error) {
	if err := r.record("ListNearby"); err != nil {
		return nil, err
	}
	return r.next.ListNearby(ctx, lat, lng, maxDistanceKm, limit)
}

func (r *Recorder) Exists(ctx context.Context, name, street, city string) (bool, error) {
	if err := r.record("Exists"); err != nil {
		return false, err
	}
	return r.next.Exists(ctx, name, street, city)
}

func (r *Recorder) Insert(ctx context.Context, restroom *models.Restroom) (models.Restroom, error) {
	if err := r.record("Insert"); err != nil {
		return models.Restroom{}, err
	}
	return r.next.Insert(ctx, restroom)
}

func (r *Recorder) ReplaceAll(ctx context.Context, restrooms []models.Restroom) (int, error) {
	if err := r.record("ReplaceAll"); err != nil {
		return 0, err
	}
	return r.next.ReplaceAll(ctx, restrooms)
}
