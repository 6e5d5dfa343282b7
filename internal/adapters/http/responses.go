package http

import "github.com/medtrack/core/internal/domain/entities"

// ScheduleResponse is the day view consumed by the mobile UI. Synthetic is
// true when the slots were built from demo-mode data, so the client can
// badge the screen instead of presenting fallback records as real.
type ScheduleResponse struct {
	Date      string                  `json:"date"`
	Synthetic bool                    `json:"synthetic"`
	Slots     []entities.ScheduleSlot `json:"slots"`
}

// MedicationListResponse wraps the catalog snapshot.
type MedicationListResponse struct {
	Synthetic   bool                  `json:"synthetic"`
	Medications []entities.Medication `json:"medications"`
}

// ReminderListResponse wraps one date's reminders.
type ReminderListResponse struct {
	Date      string               `json:"date"`
	Synthetic bool                 `json:"synthetic"`
	Reminders []entities.Reminder `json:"reminders"`
}
