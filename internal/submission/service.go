package submission

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pottyspotty/internal/geocoding"
	"pottyspotty/internal/models"
	"pottyspotty/internal/store"
)

// Stage is how far a submission got before it finished or failed.
type Stage string

const (
	StageReceived     Stage = "received"
	StageValidated    Stage = "validated"
	StageDedupChecked Stage = "dedup_checked"
	StageGeocoded     Stage = "geocoded"
	StagePersisted    Stage = "persisted"
)

// Service runs new restrooms through validation, duplicate detection,
// geocoding and persistence, in that order.
type Service struct {
	store    store.RestroomStore
	geocoder geocoding.Geocoder
	logger   *zap.Logger
}

func NewService(s store.RestroomStore, g geocoding.Geocoder, logger *zap.Logger) *Service {
	return &Service{
		store:    s,
		geocoder: g,
		logger:   logger,
	}
}

func (s *Service) Submit(ctx context.Context, in Input) (models.Restroom, error) {
	stage := StageReceived
	fail := func(err error) (models.Restroom, error) {
		s.logger.Info("restroom submission rejected",
			zap.String("stage", string(stage)),
			zap.String("name", in.Name),
			zap.Error(err),
		)
		return models.Restroom{}, err
	}

	if err := in.Validate(); err != nil {
		return fail(err)
	}
	restroom := in.Restroom()
	stage = StageValidated

	// Checked before geocoding so rejected duplicates never spend provider quota.
	exists, err := s.store.Exists(ctx, restroom.Name, restroom.Address.Street, restroom.Address.City)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrPersistence, err))
	}
	if exists {
		return fail(ErrDuplicateRestroom)
	}
	stage = StageDedupChecked

	point, err := s.geocoder.Geocode(ctx, restroom.Address)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrGeocodeFailure, err))
	}
	if point == nil {
		return fail(ErrGeocodeFailure)
	}
	restroom.Location = point
	stage = StageGeocoded

	saved, err := s.store.Insert(ctx, &restroom)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fail(ErrDuplicateRestroom)
		}
		return fail(fmt.Errorf("%w: %v", ErrPersistence, err))
	}
	stage = StagePersisted

	s.logger.Info("restroom created",
		zap.String("stage", string(stage)),
		zap.String("id", saved.ID.Hex()),
		zap.String("name", saved.Name),
	)
	return saved, nil
}
