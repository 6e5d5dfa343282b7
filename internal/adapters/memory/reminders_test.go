package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/core/internal/domain/entities"
)

func reminder(id, date string, doses ...entities.ReminderMedication) entities.Reminder {
	return entities.Reminder{ID: id, Date: date, Time: "08:00", Medications: doses}
}

func dose(id string, status entities.DoseStatus) entities.ReminderMedication {
	return entities.ReminderMedication{ID: id, MedicationID: "m-" + id, ScheduleTime: "08:00", Status: status}
}

func TestByDateExactStringEquality(t *testing.T) {
	s := NewReminderStore()
	s.ReplaceAll([]entities.Reminder{
		reminder("r1", "2025-06-10"),
		reminder("r2", "2025-06-11"),
		reminder("r3", "2025-06-10"),
	})

	got := s.ByDate("2025-06-10")
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r3", got[1].ID, "insertion order preserved")

	assert.Empty(t, s.ByDate("2025-06-12"))
	// No date parsing: a differently formatted but equivalent date does
	// not match.
	assert.Empty(t, s.ByDate("2025-6-10"))
}

func TestUpdateStatus(t *testing.T) {
	s := NewReminderStore()
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusPending))})

	require.NoError(t, s.UpdateStatus("rm1", entities.DoseStatusTaken))

	ref, ok := s.Dose("rm1")
	require.True(t, ok)
	assert.Equal(t, entities.DoseStatusTaken, ref.Dose.Status)
	assert.Equal(t, "r1", ref.ReminderID)

	assert.ErrorIs(t, s.UpdateStatus("rm-missing", entities.DoseStatusTaken), entities.ErrDoseNotFound)
	assert.ErrorIs(t, s.UpdateStatus("rm1", "vanished"), entities.ErrInvalidStatus)
}

func TestDoseReportsSyntheticParent(t *testing.T) {
	s := NewReminderStore()
	rem := reminder("offline-r1", "2025-06-10", dose("offline-rm1", entities.DoseStatusPending))
	rem.Synthetic = true
	s.Upsert(rem)

	ref, ok := s.Dose("offline-rm1")
	require.True(t, ok)
	assert.True(t, ref.Synthetic)
}

func TestReplaceAllPreservesInFlightStatus(t *testing.T) {
	// A refresh landing while a status commit is in flight must not revert
	// the optimistic edit.
	s := NewReminderStore()
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusPending))})

	require.NoError(t, s.UpdateStatus("rm1", entities.DoseStatusTaken))
	s.BeginTransition("rm1")

	// Fresh snapshot still says pending.
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusPending))})

	ref, ok := s.Dose("rm1")
	require.True(t, ok)
	assert.Equal(t, entities.DoseStatusTaken, ref.Dose.Status, "local status re-applied over the snapshot")

	s.EndTransition("rm1")

	// With the pin released, the next refresh wins.
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusPending))})
	ref, _ = s.Dose("rm1")
	assert.Equal(t, entities.DoseStatusPending, ref.Dose.Status)
}

func TestReplaceAllRetainsPinnedReminderMissingFromSnapshot(t *testing.T) {
	s := NewReminderStore()
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusTaken))})
	s.BeginTransition("rm1")

	// The snapshot dropped r1 entirely; keep the old entry whole.
	s.ReplaceAll([]entities.Reminder{reminder("r2", "2025-06-10")})

	ref, ok := s.Dose("rm1")
	require.True(t, ok)
	assert.Equal(t, entities.DoseStatusTaken, ref.Dose.Status)
	assert.Len(t, s.ByDate("2025-06-10"), 2)

	s.EndTransition("rm1")
}

func TestTransitionNesting(t *testing.T) {
	s := NewReminderStore()
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusTaken))})

	s.BeginTransition("rm1")
	s.BeginTransition("rm1")
	s.EndTransition("rm1")

	// Still pinned by the outer transition.
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusPending))})
	ref, _ := s.Dose("rm1")
	assert.Equal(t, entities.DoseStatusTaken, ref.Dose.Status)

	s.EndTransition("rm1")
	s.ReplaceAll([]entities.Reminder{reminder("r1", "2025-06-10", dose("rm1", entities.DoseStatusPending))})
	ref, _ = s.Dose("rm1")
	assert.Equal(t, entities.DoseStatusPending, ref.Dose.Status)
}

func TestUpsertInsertsAndReplaces(t *testing.T) {
	s := NewReminderStore()
	s.Upsert(reminder("r1", "2025-06-10"))
	s.Upsert(reminder("r1", "2025-06-11"))

	assert.Empty(t, s.ByDate("2025-06-10"))
	require.Len(t, s.ByDate("2025-06-11"), 1)
}
