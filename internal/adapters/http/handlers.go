package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/core/internal/application/services"
	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// httpError maps the error taxonomy onto facade status codes, carrying the
// structured kind/recoverable/suggested-action triple to the mobile client
// so it can render an actionable choice instead of a dead end.
func httpError(err error) error {
	var e *apperrors.Error
	status := http.StatusInternalServerError

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindAuth:
		status = http.StatusUnauthorized
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindSchemaMismatch:
		status = http.StatusBadGateway
	case apperrors.KindConnectivity:
		status = http.StatusServiceUnavailable
	}

	if errors.As(err, &e) {
		return echo.NewHTTPError(status, map[string]any{
			"kind":             string(e.Kind),
			"detail":           e.Detail,
			"recoverable":      e.Recoverable,
			"suggested_action": e.SuggestedAction,
		})
	}
	return echo.NewHTTPError(status, err.Error())
}

// ScheduleHandler serves the computed day view.
type ScheduleHandler struct {
	reminders *services.ReminderService
	schedule  *services.ScheduleService
	logger    *logger.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(reminders *services.ReminderService, schedule *services.ScheduleService, appLogger *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		reminders: reminders,
		schedule:  schedule,
		logger:    appLogger,
	}
}

// GetSchedule refreshes the selected date and returns its slot list.
// @Summary Day schedule
// @Tags Schedule
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} ScheduleResponse
// @Router /schedule [get]
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return httpError(apperrors.Validation("date query parameter is required", nil))
	}

	synthetic, _, err := h.reminders.RefreshDay(c.Request().Context(), date)
	if err != nil {
		h.logger.Errorw("Schedule refresh failed", "error", err, "date", date)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ScheduleResponse{
		Date:      date,
		Synthetic: synthetic,
		Slots:     h.schedule.BuildDay(date),
	})
}

// MedicationHandler handles medication requests.
type MedicationHandler struct {
	medications *services.MedicationService
	logger      *logger.Logger
}

// NewMedicationHandler creates a new medication handler
func NewMedicationHandler(medications *services.MedicationService, appLogger *logger.Logger) *MedicationHandler {
	return &MedicationHandler{
		medications: medications,
		logger:      appLogger,
	}
}

// ListMedications refreshes and returns the catalog.
func (h *MedicationHandler) ListMedications(c echo.Context) error {
	synthetic, err := h.medications.Refresh(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Medication refresh failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, MedicationListResponse{
		Synthetic:   synthetic,
		Medications: h.medications.List(),
	})
}

// CreateMedication handles medication creation.
func (h *MedicationHandler) CreateMedication(c echo.Context) error {
	var req ports.CreateMedicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(apperrors.Validation(err.Error(), err))
	}

	med, err := h.medications.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Medication create failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, med)
}

// UpdateMedication handles medication updates.
func (h *MedicationHandler) UpdateMedication(c echo.Context) error {
	var req ports.CreateMedicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(apperrors.Validation(err.Error(), err))
	}

	med, err := h.medications.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Errorw("Medication update failed", "error", err, "medication_id", c.Param("id"))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, med)
}

// DeleteMedication handles medication deletion.
func (h *MedicationHandler) DeleteMedication(c echo.Context) error {
	if err := h.medications.Delete(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Errorw("Medication delete failed", "error", err, "medication_id", c.Param("id"))
		return httpError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Medication deleted"})
}

// ReminderHandler handles reminder requests.
type ReminderHandler struct {
	reminders *services.ReminderService
	logger    *logger.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminders *services.ReminderService, appLogger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
		logger:    appLogger,
	}
}

// ListReminders refreshes and returns one date's reminders.
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return httpError(apperrors.Validation("date query parameter is required", nil))
	}

	synthetic, _, err := h.reminders.RefreshDay(c.Request().Context(), date)
	if err != nil {
		h.logger.Errorw("Reminder refresh failed", "error", err, "date", date)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ReminderListResponse{
		Date:      date,
		Synthetic: synthetic,
		Reminders: h.reminders.ByDate(date),
	})
}

// CreateReminder handles reminder creation.
func (h *ReminderHandler) CreateReminder(c echo.Context) error {
	var req ports.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(apperrors.Validation(err.Error(), err))
	}

	rem, err := h.reminders.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Reminder create failed", "error", err)
		return httpError(err)
	}

	status := http.StatusCreated
	if rem.Synthetic {
		// The action was preserved offline, not confirmed by the backend.
		status = http.StatusAccepted
	}
	return c.JSON(status, rem)
}

// DoseHandler handles status transitions on reminder-medication links.
type DoseHandler struct {
	status *services.StatusService
	logger *logger.Logger
}

// NewDoseHandler creates a new dose handler
func NewDoseHandler(status *services.StatusService, appLogger *logger.Logger) *DoseHandler {
	return &DoseHandler{
		status: status,
		logger: appLogger,
	}
}

// MarkTaken marks one dose taken.
func (h *DoseHandler) MarkTaken(c echo.Context) error {
	return h.transition(c, h.status.MarkTaken)
}

// MarkSkipped marks one dose skipped.
func (h *DoseHandler) MarkSkipped(c echo.Context) error {
	return h.transition(c, h.status.MarkSkipped)
}

// Reset returns one dose to pending.
func (h *DoseHandler) Reset(c echo.Context) error {
	return h.transition(c, h.status.Reset)
}

func (h *DoseHandler) transition(c echo.Context, op func(ctx context.Context, id string) error) error {
	id := c.Param("id")

	if err := op(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Status transition failed", "error", err, "reminder_med_id", id)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Status updated"})
}
