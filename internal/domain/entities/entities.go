package entities

import "errors"

// Common errors
var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrDoseNotFound       = errors.New("reminder medication not found")
	ErrInvalidStatus      = errors.New("invalid dose status")
	ErrInvalidDate        = errors.New("invalid calendar date")
)

// Enums and types
type PillVisualType string

const (
	PillWhite       PillVisualType = "white"
	PillBlue        PillVisualType = "blue"
	PillOrange      PillVisualType = "orange"
	PillPurpleWhite PillVisualType = "purple-white"
)

// Color returns the presentation color derived from the pill visual type.
// The color is never authoritative; it is always recomputed from the type.
func (p PillVisualType) Color() string {
	switch p {
	case PillBlue:
		return "#4A90D9"
	case PillOrange:
		return "#F5A623"
	case PillPurpleWhite:
		return "#9B6BC3"
	default:
		return "#FFFFFF"
	}
}

type WhenToTake string

const (
	WhenBeforeMeal   WhenToTake = "before_meal"
	WhenWithMeal     WhenToTake = "with_meal"
	WhenAfterMeal    WhenToTake = "after_meal"
	WhenEmptyStomach WhenToTake = "empty_stomach"
	WhenCustom       WhenToTake = "custom"
)

type RepeatType string

const (
	RepeatDaily    RepeatType = "daily"
	RepeatWeekly   RepeatType = "weekly"
	RepeatMonthly  RepeatType = "monthly"
	RepeatAsNeeded RepeatType = "as_needed"
)

type DoseStatus string

const (
	DoseStatusPending DoseStatus = "pending"
	DoseStatusTaken   DoseStatus = "taken"
	DoseStatusSkipped DoseStatus = "skipped"
)

// Valid reports whether the status is one of the three known states.
func (s DoseStatus) Valid() bool {
	switch s {
	case DoseStatusPending, DoseStatusTaken, DoseStatusSkipped:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to target is a legal
// state-machine transition. Taking and skipping are only legal from
// pending; reset is only legal from taken or skipped.
func (s DoseStatus) CanTransition(target DoseStatus) bool {
	switch target {
	case DoseStatusTaken, DoseStatusSkipped:
		return s == DoseStatusPending
	case DoseStatusPending:
		return s == DoseStatusTaken || s == DoseStatusSkipped
	}
	return false
}

// Medication is the canonical normalized medication record.
//
// RawSource retains the original backend object untouched so updates can be
// round-tripped to whichever schema the backend is currently using.
// Synthetic marks locally fabricated records produced while the backend is
// unreachable; they are never mistaken for server-confirmed data.
type Medication struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	DosageAmount      string         `json:"dosage_amount"`
	DosageUnit        string         `json:"dosage_unit"`
	FrequencyLabel    string         `json:"frequency_label"`
	DefaultTime       string         `json:"default_time"` // HH:MM
	PillVisualType    PillVisualType `json:"pill_visual_type"`
	Color             string         `json:"color"`
	IconType          string         `json:"icon_type"`
	ActiveIngredient  string         `json:"active_ingredient"`
	SideEffects       string         `json:"side_effects"`
	WhenToTake        WhenToTake     `json:"when_to_take"`
	RemainingQuantity int            `json:"remaining_quantity"`
	Unit              string         `json:"unit"`
	StartDate         string         `json:"start_date"`            // YYYY-MM-DD
	EndDate           string         `json:"end_date"`              // YYYY-MM-DD
	RefillDate        string         `json:"refill_date,omitempty"` // YYYY-MM-DD, optional
	RawSource         map[string]any `json:"-"`
	Synthetic         bool           `json:"synthetic,omitempty"`
}

// ReminderMedication is one medication-within-a-reminder link. Its ID is
// the unit that status transitions operate on.
type ReminderMedication struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	ScheduleTime string     `json:"schedule_time"` // HH:MM
	Status       DoseStatus `json:"status"`
}

// Reminder is a scheduled occurrence linking one or more medications to a
// due dose. Date is a canonical YYYY-MM-DD string, never a timezone-bearing
// timestamp; it is the single partition key for "what's due today" queries.
// Recurrence is authored once at creation and each occurrence is
// materialized as its own Reminder by the backend, so no recurrence
// expansion happens at query time here.
type Reminder struct {
	ID          string               `json:"id"`
	Date        string               `json:"date"` // YYYY-MM-DD
	Time        string               `json:"time"` // HH:MM, 24h
	Title       string               `json:"title,omitempty"`
	RepeatType  RepeatType           `json:"repeat_type"`
	RepeatDays  []int                `json:"repeat_days,omitempty"` // weekday numbers, weekly only
	Medications []ReminderMedication `json:"medications"`
	Synthetic   bool                 `json:"synthetic,omitempty"`
}

// ScheduleEntry is one resolved medication-status pair inside a slot.
type ScheduleEntry struct {
	Medication    Medication `json:"medication"`
	Status        DoseStatus `json:"status"`
	ReminderMedID string     `json:"reminder_med_id"`
}

// ScheduleSlot is a computed, time-grouped view of medications due at a
// given time on a given date. Slots are ephemeral: they are rebuilt whenever
// the stores or the selected date change and are never persisted.
type ScheduleSlot struct {
	Time    string          `json:"time"` // HH:MM
	Entries []ScheduleEntry `json:"entries"`
}

// UnknownMedication synthesizes a minimal placeholder for a reminder whose
// medication was deleted after the reminder was created. The dose still
// renders; hiding it silently would make a previously-scheduled dose
// disappear without explanation.
func UnknownMedication(id string) Medication {
	return Medication{
		ID:             id,
		Name:           "Unknown medication",
		DosageAmount:   "1",
		DosageUnit:     "dose",
		PillVisualType: PillWhite,
		Color:          PillWhite.Color(),
		WhenToTake:     WhenCustom,
	}
}
