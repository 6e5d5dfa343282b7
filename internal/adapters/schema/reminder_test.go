package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/core/internal/domain/entities"
)

func TestNormalizeReminderJoinedMedications(t *testing.T) {
	rem := NormalizeReminder(map[string]any{
		"id":   "r1",
		"date": "2025-06-10",
		"time": "08:00",
		"reminder_medications": []any{
			map[string]any{
				"reminder_medication_id": "rm1",
				"medication_id":          "m1",
				"schedule_time":          "08:00",
				"status":                 "taken",
			},
		},
	})

	assert.Equal(t, "r1", rem.ID)
	assert.Equal(t, "2025-06-10", rem.Date)
	require.Len(t, rem.Medications, 1)
	assert.Equal(t, "rm1", rem.Medications[0].ID)
	assert.Equal(t, "m1", rem.Medications[0].MedicationID)
	assert.Equal(t, entities.DoseStatusTaken, rem.Medications[0].Status)
}

func TestNormalizeReminderLegacyMedicationsArray(t *testing.T) {
	rem := NormalizeReminder(map[string]any{
		"id":   "r2",
		"date": "2025-06-10",
		"time": "20:00",
		"medications": []any{
			map[string]any{"id": "rm2", "medication_id": "m2"},
		},
	})

	require.Len(t, rem.Medications, 1)
	assert.Equal(t, "rm2", rem.Medications[0].ID)
	assert.Equal(t, "20:00", rem.Medications[0].ScheduleTime, "dose time falls back to the reminder time")
	assert.Equal(t, entities.DoseStatusPending, rem.Medications[0].Status, "absent status defaults to pending")
}

func TestNormalizeReminderBareMedicationID(t *testing.T) {
	// Oldest schema: a single medication id directly on the reminder.
	rem := NormalizeReminder(map[string]any{
		"id":            "r3",
		"date":          "2025-06-10",
		"time":          "12:00",
		"medication_id": "m3",
	})

	require.Len(t, rem.Medications, 1)
	assert.Equal(t, "r3:m3", rem.Medications[0].ID)
	assert.Equal(t, "m3", rem.Medications[0].MedicationID)
	assert.Equal(t, "12:00", rem.Medications[0].ScheduleTime)
}

func TestNormalizeReminderUnknownStatusDefaultsPending(t *testing.T) {
	rem := NormalizeReminder(map[string]any{
		"id": "r4",
		"reminder_medications": []any{
			map[string]any{"id": "rm4", "medication_id": "m4", "status": "definitely-taken"},
		},
	})

	require.Len(t, rem.Medications, 1)
	assert.Equal(t, entities.DoseStatusPending, rem.Medications[0].Status)
}

func TestNormalizeReminderRepeat(t *testing.T) {
	rem := NormalizeReminder(map[string]any{
		"id":          "r5",
		"repeat_type": "weekly",
		"repeat_days": []any{float64(1), float64(3), float64(5)},
	})
	assert.Equal(t, entities.RepeatWeekly, rem.RepeatType)
	assert.Equal(t, []int{1, 3, 5}, rem.RepeatDays)

	unknown := NormalizeReminder(map[string]any{"id": "r6", "repeat_type": "fortnightly"})
	assert.Equal(t, entities.RepeatDaily, unknown.RepeatType)
}

func TestNormalizeReminderNoMedications(t *testing.T) {
	rem := NormalizeReminder(map[string]any{"id": "r7", "date": "2025-06-10"})
	assert.Empty(t, rem.Medications)
}
