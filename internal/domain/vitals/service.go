package vitals

import (
	"context"

	"github.com/rs/zerolog"
)

type Service struct {
	repo     Repository
	renderer *Renderer
	logger   zerolog.Logger
}

func NewService(repo Repository, renderer *Renderer, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

// Intake normalizes a raw submission and persists the resulting record.
// Nothing is written when normalization fails.
func (s *Service) Intake(ctx context.Context, raw map[string]interface{}) (*VitalsRecord, error) {
	rec, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info().Str("patient_id", rec.PatientID).Msg("vitals recorded")
	return rec, nil
}

// Get returns the stored record for a patient id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, patientID string) (*VitalsRecord, error) {
	return s.repo.FindByID(ctx, patientID)
}

// Report fetches the record and renders its PDF. The renderer is never
// invoked for a missing record; ErrNotFound propagates from the fetch.
func (s *Service) Report(ctx context.Context, patientID string) ([]byte, error) {
	rec, err := s.repo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(rec)
}

// Ping reports store reachability for health checks.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
