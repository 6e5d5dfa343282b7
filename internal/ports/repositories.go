package ports

import (
	"context"

	"github.com/medtrack/core/internal/domain/entities"
)

// MedicationCatalog holds the normalized set of medications for the current
// user. Exposed to collaborators as read-only snapshots plus ReplaceAll;
// no collaborator mutates entries directly.
type MedicationCatalog interface {
	// ReplaceAll swaps the whole catalog for the given snapshot. Every
	// successful fetch is a full replace, never an incremental diff.
	ReplaceAll(medications []entities.Medication)
	Get(id string) (entities.Medication, bool)
	List() []entities.Medication
	Upsert(medication entities.Medication)
	Remove(id string)
}

// DoseRef locates one reminder-medication link inside the store.
type DoseRef struct {
	ReminderID string
	Synthetic  bool
	Dose       entities.ReminderMedication
}

// ReminderStore holds normalized reminder records for the queried date
// range, keyed by reminder id and partitioned by calendar date.
type ReminderStore interface {
	// ReplaceAll swaps the store for the given snapshot. Entries with an
	// in-flight status transition are merge-preserved so a concurrent
	// refresh cannot discard an optimistic edit.
	ReplaceAll(reminders []entities.Reminder)
	// ByDate returns reminders whose date equals the target using exact
	// string equality, in insertion order.
	ByDate(date string) []entities.Reminder
	// Upsert mirrors a single reminder after a successful remote create,
	// or inserts a synthetic offline reminder.
	Upsert(reminder entities.Reminder)
	// Dose resolves a reminder-medication link by its id.
	Dose(reminderMedID string) (DoseRef, bool)
	// UpdateStatus sets the status of one dose. Used exclusively by the
	// status reconciler.
	UpdateStatus(reminderMedID string, status entities.DoseStatus) error
	// BeginTransition and EndTransition pin a dose while its remote
	// commit is in flight, so ReplaceAll preserves it.
	BeginTransition(reminderMedID string)
	EndTransition(reminderMedID string)
}

// TokenSource supplies the bearer token for backend calls. Refresh is
// invoked at most once per request, after a 401; token lifecycle beyond
// that belongs to the external auth collaborator.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// MedicationAPI is the remote medication endpoint surface.
type MedicationAPI interface {
	FetchMedications(ctx context.Context) ([]entities.Medication, error)
	CreateMedication(ctx context.Context, req CreateMedicationRequest) (entities.Medication, error)
	// CreateMedicationSimple posts the reduced payload every backend
	// schema version accepts.
	CreateMedicationSimple(ctx context.Context, req CreateMedicationRequest) (entities.Medication, error)
	UpdateMedication(ctx context.Context, id string, req CreateMedicationRequest) (entities.Medication, error)
	DeleteMedication(ctx context.Context, id string) error
}

// ReminderAPI is the remote reminder endpoint surface.
type ReminderAPI interface {
	FetchRemindersByDate(ctx context.Context, date string) ([]entities.Reminder, error)
	CreateReminder(ctx context.Context, req CreateReminderRequest) (entities.Reminder, error)
	SetDoseStatus(ctx context.Context, reminderMedID string, status entities.DoseStatus) error
}
