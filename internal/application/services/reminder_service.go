package services

import (
	"context"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/medtrack/core/internal/adapters/remote"
	"github.com/medtrack/core/internal/adapters/schema"
	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// ReminderService owns the reminder store lifecycle: per-date fetches with
// staleness control and demo-mode fallback, plus reminder creation with the
// schema-mismatch and offline recovery ladder.
type ReminderService struct {
	store    ports.ReminderStore
	api      ports.ReminderAPI
	guard    *remote.Guard
	validate *validator.Validate
	logger   *logger.Logger

	// latest is the monotonically increasing request token. A fetch whose
	// token is no longer the newest issued discards its response, so rapid
	// date switching cannot apply a stale day's snapshot.
	latest atomic.Uint64
}

// NewReminderService creates a new reminder service
func NewReminderService(store ports.ReminderStore, api ports.ReminderAPI, guard *remote.Guard, appLogger *logger.Logger) *ReminderService {
	return &ReminderService{
		store:    store,
		api:      api,
		guard:    guard,
		validate: validator.New(),
		logger:   appLogger.WithComponent("reminders"),
	}
}

// RefreshDay replaces the store with the reminders for one calendar date.
// Returns whether the store now holds synthetic data and whether the
// response was applied (false when superseded by a newer request).
func (s *ReminderService) RefreshDay(ctx context.Context, date string) (synthetic bool, applied bool, err error) {
	if schema.NormalizeDate(date) == "" {
		return false, false, apperrors.Validation("date must be YYYY-MM-DD", entities.ErrInvalidDate)
	}

	token := s.latest.Add(1)

	result, err := remote.WithFallback(ctx, s.guard, "fetch_reminders", func(ctx context.Context) ([]entities.Reminder, error) {
		return s.api.FetchRemindersByDate(ctx, date)
	}, remote.SampleReminders(date), false)
	if err != nil {
		return false, false, err
	}

	if s.latest.Load() != token {
		s.logger.Debugw("Discarding superseded fetch", "date", date, "token", token)
		return result.Synthetic, false, nil
	}

	s.store.ReplaceAll(result.Data)
	s.logger.Infow("Reminders refreshed", "date", date, "count", len(result.Data), "synthetic", result.Synthetic)
	return result.Synthetic, true, nil
}

// ByDate returns the stored reminders for one date.
func (s *ReminderService) ByDate(date string) []entities.Reminder {
	return s.store.ByDate(date)
}

// Create posts a new reminder. Date and at least one linked medication are
// validated before the wire -- they are the two fields the backend rejects
// requests for. A schema-mismatch rejection is retried once with the
// simplified payload; if the backend still cannot take the write, a
// synthetic offline reminder is stored as the terminal fallback so the
// user's action is not silently lost.
func (s *ReminderService) Create(ctx context.Context, req ports.CreateReminderRequest) (entities.Reminder, error) {
	if err := s.validate.Struct(req); err != nil {
		return entities.Reminder{}, apperrors.Validation("reminder needs a date and at least one medication", err)
	}

	rem, err := s.api.CreateReminder(ctx, req)
	if apperrors.IsKind(err, apperrors.KindSchemaMismatch) {
		s.logger.Warnw("Create rejected by backend schema, retrying simplified", "date", req.Date, "error", err.Error())
		rem, err = s.api.CreateReminder(ctx, req.Simplified())
	}

	switch apperrors.KindOf(err) {
	case "":
		// Mirror locally only after the successful round trip.
		if rem.Date == "" {
			rem.Date = req.Date
		}
		if rem.Time == "" {
			rem.Time = schema.NormalizeClock(req.Time)
		}
		s.store.Upsert(rem)
		s.logger.Infow("Reminder created", "reminder_id", rem.ID, "date", rem.Date)
		return rem, nil
	case apperrors.KindValidation, apperrors.KindAuth:
		return entities.Reminder{}, err
	default:
		offline := s.offlineReminder(req)
		s.store.Upsert(offline)
		s.logger.LogFallback("create_reminder", err.Error())
		return offline, nil
	}
}

// offlineReminder fabricates the synthetic fallback for a create the
// backend could not take.
func (s *ReminderService) offlineReminder(req ports.CreateReminderRequest) entities.Reminder {
	clock := schema.NormalizeClock(req.Time)

	rem := entities.Reminder{
		ID:         "offline-" + uuid.NewString(),
		Date:       req.Date,
		Time:       clock,
		Title:      req.Title,
		RepeatType: entities.RepeatDaily,
		RepeatDays: req.RepeatDays,
		Synthetic:  true,
	}
	if rt := entities.RepeatType(req.RepeatType); rt == entities.RepeatWeekly || rt == entities.RepeatMonthly || rt == entities.RepeatAsNeeded {
		rem.RepeatType = rt
	}

	for _, input := range req.Medications {
		scheduleTime := clock
		if input.ScheduleTime != "" {
			scheduleTime = schema.NormalizeClock(input.ScheduleTime)
		}
		rem.Medications = append(rem.Medications, entities.ReminderMedication{
			ID:           "offline-" + uuid.NewString(),
			MedicationID: input.MedicationID,
			ScheduleTime: scheduleTime,
			Status:       entities.DoseStatusPending,
		})
	}

	return rem
}
