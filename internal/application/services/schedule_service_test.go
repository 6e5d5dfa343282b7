package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/core/internal/adapters/memory"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/logger"
)

func scheduleFixture() (*memory.MedicationCatalog, *memory.ReminderStore, *ScheduleService) {
	catalog := memory.NewMedicationCatalog()
	store := memory.NewReminderStore()
	svc := NewScheduleService(catalog, store, logger.NewNop())
	return catalog, store, svc
}

func TestBuildDayMatchesExactDate(t *testing.T) {
	catalog, store, svc := scheduleFixture()

	catalog.ReplaceAll([]entities.Medication{{ID: "m1", Name: "Atorvastatin"}})
	store.ReplaceAll([]entities.Reminder{{
		ID:   "r1",
		Date: "2025-06-10",
		Time: "08:00",
		Medications: []entities.ReminderMedication{
			{ID: "rm1", MedicationID: "m1", ScheduleTime: "08:00", Status: entities.DoseStatusPending},
		},
	}})

	slots := svc.BuildDay("2025-06-10")
	require.Len(t, slots, 1)
	assert.Equal(t, "08:00", slots[0].Time)
	require.Len(t, slots[0].Entries, 1)
	assert.Equal(t, "Atorvastatin", slots[0].Entries[0].Medication.Name)
	assert.Equal(t, entities.DoseStatusPending, slots[0].Entries[0].Status)
	assert.Equal(t, "rm1", slots[0].Entries[0].ReminderMedID)

	assert.Empty(t, svc.BuildDay("2025-06-11"), "adjacent date yields an empty slot list")
}

func TestBuildDayGroupsByTimeAndSorts(t *testing.T) {
	catalog, store, svc := scheduleFixture()

	catalog.ReplaceAll([]entities.Medication{
		{ID: "m1", Name: "Atorvastatin"},
		{ID: "m2", Name: "Lisinopril"},
		{ID: "m3", Name: "Sertraline"},
	})
	store.ReplaceAll([]entities.Reminder{
		{
			ID: "r1", Date: "2025-06-10", Time: "20:00",
			Medications: []entities.ReminderMedication{
				{ID: "rm1", MedicationID: "m3", ScheduleTime: "20:00", Status: entities.DoseStatusPending},
			},
		},
		{
			ID: "r2", Date: "2025-06-10", Time: "08:00",
			Medications: []entities.ReminderMedication{
				{ID: "rm2", MedicationID: "m1", ScheduleTime: "08:00", Status: entities.DoseStatusPending},
			},
		},
		{
			ID: "r3", Date: "2025-06-10", Time: "08:00",
			Medications: []entities.ReminderMedication{
				{ID: "rm3", MedicationID: "m2", ScheduleTime: "08:00", Status: entities.DoseStatusPending},
			},
		},
	})

	slots := svc.BuildDay("2025-06-10")
	require.Len(t, slots, 2)

	assert.Equal(t, "08:00", slots[0].Time)
	require.Len(t, slots[0].Entries, 2)
	assert.Equal(t, "rm2", slots[0].Entries[0].ReminderMedID, "ties keep reminder insertion order")
	assert.Equal(t, "rm3", slots[0].Entries[1].ReminderMedID)

	assert.Equal(t, "20:00", slots[1].Time)
}

func TestBuildDayNumericTimeOrdering(t *testing.T) {
	_, store, svc := scheduleFixture()

	store.ReplaceAll([]entities.Reminder{
		{ID: "r1", Date: "2025-06-10", Medications: []entities.ReminderMedication{
			{ID: "rm1", MedicationID: "m1", ScheduleTime: "10:00", Status: entities.DoseStatusPending},
		}},
		{ID: "r2", Date: "2025-06-10", Medications: []entities.ReminderMedication{
			{ID: "rm2", MedicationID: "m1", ScheduleTime: "09:30", Status: entities.DoseStatusPending},
		}},
	})

	slots := svc.BuildDay("2025-06-10")
	require.Len(t, slots, 2)
	// Lexicographic comparison would also pass here, so the interesting
	// case is the one where it would not.
	assert.Equal(t, "09:30", slots[0].Time)
	assert.Equal(t, "10:00", slots[1].Time)
}

func TestBuildDayMissingMedicationRendersPlaceholder(t *testing.T) {
	_, store, svc := scheduleFixture()

	store.ReplaceAll([]entities.Reminder{{
		ID: "r1", Date: "2025-06-10",
		Medications: []entities.ReminderMedication{
			{ID: "rm1", MedicationID: "m-deleted", ScheduleTime: "08:00", Status: entities.DoseStatusPending},
		},
	}})

	slots := svc.BuildDay("2025-06-10")
	require.Len(t, slots, 1)
	require.Len(t, slots[0].Entries, 1)
	assert.Equal(t, "Unknown medication", slots[0].Entries[0].Medication.Name)
	assert.Equal(t, "m-deleted", slots[0].Entries[0].Medication.ID)
}

func TestBuildDayIsDeterministic(t *testing.T) {
	catalog, store, svc := scheduleFixture()

	catalog.ReplaceAll([]entities.Medication{{ID: "m1", Name: "Atorvastatin"}})
	store.ReplaceAll([]entities.Reminder{{
		ID: "r1", Date: "2025-06-10",
		Medications: []entities.ReminderMedication{
			{ID: "rm1", MedicationID: "m1", ScheduleTime: "08:00", Status: entities.DoseStatusPending},
			{ID: "rm2", MedicationID: "m1", ScheduleTime: "12:00", Status: entities.DoseStatusTaken},
		},
	}})

	first := svc.BuildDay("2025-06-10")
	second := svc.BuildDay("2025-06-10")
	assert.Equal(t, first, second, "unchanged inputs yield structurally identical output")
}

func TestBuildDayEmptyStore(t *testing.T) {
	_, _, svc := scheduleFixture()
	slots := svc.BuildDay("2025-06-10")
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}
