package services

import (
	"context"

	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// StatusService drives the per-dose state machine: pending, taken, skipped.
// Every transition is applied locally first (optimistic) and committed
// remotely afterwards; a failed commit restores the captured previous
// status and surfaces the error, so the UI never retains an optimistic
// value the backend rejected.
type StatusService struct {
	store  ports.ReminderStore
	api    ports.ReminderAPI
	logger *logger.Logger
}

// NewStatusService creates a new status service
func NewStatusService(store ports.ReminderStore, api ports.ReminderAPI, appLogger *logger.Logger) *StatusService {
	return &StatusService{
		store:  store,
		api:    api,
		logger: appLogger.WithComponent("status"),
	}
}

// MarkTaken transitions a pending dose to taken.
func (s *StatusService) MarkTaken(ctx context.Context, reminderMedID string) error {
	return s.transition(ctx, reminderMedID, entities.DoseStatusTaken)
}

// MarkSkipped transitions a pending dose to skipped.
func (s *StatusService) MarkSkipped(ctx context.Context, reminderMedID string) error {
	return s.transition(ctx, reminderMedID, entities.DoseStatusSkipped)
}

// Reset returns a taken or skipped dose to pending.
func (s *StatusService) Reset(ctx context.Context, reminderMedID string) error {
	return s.transition(ctx, reminderMedID, entities.DoseStatusPending)
}

func (s *StatusService) transition(ctx context.Context, reminderMedID string, target entities.DoseStatus) error {
	ref, ok := s.store.Dose(reminderMedID)
	if !ok {
		return apperrors.NotFound("reminder medication "+reminderMedID, entities.ErrDoseNotFound)
	}

	previous := ref.Dose.Status
	if !previous.CanTransition(target) {
		// Duplicate UI taps land here; an illegal transition is a no-op
		// that still reports success.
		s.logger.Debugw("Ignoring illegal transition", "reminder_med_id", reminderMedID, "from", previous, "to", target)
		return nil
	}

	if err := s.store.UpdateStatus(reminderMedID, target); err != nil {
		return err
	}

	// Synthetic doses never touch the network; the optimistic value is the
	// committed value.
	if ref.Synthetic {
		return nil
	}

	s.store.BeginTransition(reminderMedID)
	defer s.store.EndTransition(reminderMedID)

	if err := s.api.SetDoseStatus(ctx, reminderMedID, target); err != nil {
		if rollbackErr := s.store.UpdateStatus(reminderMedID, previous); rollbackErr != nil {
			s.logger.Errorw("Rollback failed", "reminder_med_id", reminderMedID, "error", rollbackErr.Error())
		}
		s.logger.Warnw("Status commit failed, rolled back", "reminder_med_id", reminderMedID, "target", target, "error", err.Error())
		return err
	}

	return nil
}
