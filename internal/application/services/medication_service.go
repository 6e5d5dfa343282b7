package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/medtrack/core/internal/adapters/remote"
	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// MedicationService owns the medication catalog lifecycle: guarded fetches
// with demo-mode fallback, and remote mutations mirrored locally only after
// a successful round trip.
type MedicationService struct {
	catalog  ports.MedicationCatalog
	api      ports.MedicationAPI
	guard    *remote.Guard
	validate *validator.Validate
	logger   *logger.Logger
}

// NewMedicationService creates a new medication service
func NewMedicationService(catalog ports.MedicationCatalog, api ports.MedicationAPI, guard *remote.Guard, appLogger *logger.Logger) *MedicationService {
	return &MedicationService{
		catalog:  catalog,
		api:      api,
		guard:    guard,
		validate: validator.New(),
		logger:   appLogger.WithComponent("medications"),
	}
}

// Refresh replaces the catalog with a fresh backend snapshot, degrading to
// the deterministic sample set when the backend is unusable. The returned
// flag reports whether the catalog now holds synthetic data.
func (s *MedicationService) Refresh(ctx context.Context) (synthetic bool, err error) {
	result, err := remote.WithFallback(ctx, s.guard, "fetch_medications", s.api.FetchMedications, remote.SampleMedications(), false)
	if err != nil {
		return false, err
	}

	s.catalog.ReplaceAll(result.Data)
	s.logger.Infow("Medication catalog refreshed", "count", len(result.Data), "synthetic", result.Synthetic)
	return result.Synthetic, nil
}

// List returns the current catalog snapshot.
func (s *MedicationService) List() []entities.Medication {
	return s.catalog.List()
}

// Get looks up one medication by id.
func (s *MedicationService) Get(id string) (entities.Medication, error) {
	med, ok := s.catalog.Get(id)
	if !ok {
		return entities.Medication{}, apperrors.NotFound("medication "+id, entities.ErrMedicationNotFound)
	}
	return med, nil
}

// Create posts a new medication. A schema-mismatch rejection is retried
// once through the simplified endpoint before surfacing.
func (s *MedicationService) Create(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error) {
	if err := s.validate.Struct(req); err != nil {
		return entities.Medication{}, apperrors.Validation("medication is missing required fields", err)
	}

	med, err := s.api.CreateMedication(ctx, req)
	if apperrors.IsKind(err, apperrors.KindSchemaMismatch) {
		s.logger.Warnw("Create rejected by backend schema, retrying simplified", "name", req.Name, "error", err.Error())
		med, err = s.api.CreateMedicationSimple(ctx, req)
	}
	if err != nil {
		return entities.Medication{}, err
	}

	s.catalog.Upsert(med)
	s.logger.Infow("Medication created", "medication_id", med.ID, "name", med.Name)
	return med, nil
}

// Update replaces a medication record. A NotFound from the backend means
// the medication was deleted remotely; the structured error offers the
// caller a create-as-new path instead of failing silently.
func (s *MedicationService) Update(ctx context.Context, id string, req ports.CreateMedicationRequest) (entities.Medication, error) {
	if err := s.validate.Struct(req); err != nil {
		return entities.Medication{}, apperrors.Validation("medication is missing required fields", err)
	}

	med, err := s.api.UpdateMedication(ctx, id, req)
	if apperrors.IsKind(err, apperrors.KindSchemaMismatch) {
		s.logger.Warnw("Update rejected by backend schema, retrying simplified", "medication_id", id, "error", err.Error())
		med, err = s.api.UpdateMedication(ctx, id, req.Simplified())
	}
	if err != nil {
		return entities.Medication{}, err
	}

	s.catalog.Upsert(med)
	s.logger.Infow("Medication updated", "medication_id", id)
	return med, nil
}

// Delete removes a medication. Destructive writes are no-fallback: the
// error propagates untouched rather than degrading to synthetic data.
func (s *MedicationService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteMedication(ctx, id); err != nil {
		return err
	}

	s.catalog.Remove(id)
	s.logger.Infow("Medication deleted", "medication_id", id)
	return nil
}
