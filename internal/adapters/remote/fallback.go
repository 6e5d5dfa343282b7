package remote

import (
	"fmt"

	"github.com/medtrack/core/internal/domain/entities"
)

// Deterministic sample data served when the backend is unreachable. The
// records are stable across runs so the UI can be exercised offline and
// tests can assert exact contents. Every record carries the synthetic
// marker and an "offline-" id so it can never collide with, or be mistaken
// for, a server-confirmed entity.

const offlineIDPrefix = "offline-"

// SampleMedications returns the demo-mode medication catalog.
func SampleMedications() []entities.Medication {
	samples := []entities.Medication{
		{
			ID:               offlineIDPrefix + "med-1",
			Name:             "Atorvastatin",
			DosageAmount:     "20",
			DosageUnit:       "mg",
			FrequencyLabel:   "Once daily",
			DefaultTime:      "08:00",
			PillVisualType:   entities.PillWhite,
			IconType:         "general",
			ActiveIngredient: "Atorvastatin calcium",
			WhenToTake:       entities.WhenWithMeal,
		},
		{
			ID:               offlineIDPrefix + "med-2",
			Name:             "Lisinopril",
			DosageAmount:     "10",
			DosageUnit:       "mg",
			FrequencyLabel:   "Once daily",
			DefaultTime:      "08:00",
			PillVisualType:   entities.PillOrange,
			IconType:         "hypertension",
			ActiveIngredient: "Lisinopril dihydrate",
			WhenToTake:       entities.WhenBeforeMeal,
		},
		{
			ID:               offlineIDPrefix + "med-3",
			Name:             "Sertraline",
			DosageAmount:     "50",
			DosageUnit:       "mg",
			FrequencyLabel:   "Once daily",
			DefaultTime:      "20:00",
			PillVisualType:   entities.PillPurpleWhite,
			IconType:         "antidepressant",
			ActiveIngredient: "Sertraline hydrochloride",
			WhenToTake:       entities.WhenAfterMeal,
		},
	}

	for i := range samples {
		samples[i].Color = samples[i].PillVisualType.Color()
		samples[i].RemainingQuantity = 30
		samples[i].Unit = "tablet"
		samples[i].Synthetic = true
	}
	return samples
}

// SampleReminders returns the demo-mode reminders for one calendar date,
// one per distinct default time of the sample medications.
func SampleReminders(date string) []entities.Reminder {
	return []entities.Reminder{
		{
			ID:         fmt.Sprintf("%srem-%s-morning", offlineIDPrefix, date),
			Date:       date,
			Time:       "08:00",
			Title:      "Morning medications",
			RepeatType: entities.RepeatDaily,
			Synthetic:  true,
			Medications: []entities.ReminderMedication{
				{
					ID:           fmt.Sprintf("%sdose-%s-1", offlineIDPrefix, date),
					MedicationID: offlineIDPrefix + "med-1",
					ScheduleTime: "08:00",
					Status:       entities.DoseStatusPending,
				},
				{
					ID:           fmt.Sprintf("%sdose-%s-2", offlineIDPrefix, date),
					MedicationID: offlineIDPrefix + "med-2",
					ScheduleTime: "08:00",
					Status:       entities.DoseStatusPending,
				},
			},
		},
		{
			ID:         fmt.Sprintf("%srem-%s-evening", offlineIDPrefix, date),
			Date:       date,
			Time:       "20:00",
			Title:      "Evening medications",
			RepeatType: entities.RepeatDaily,
			Synthetic:  true,
			Medications: []entities.ReminderMedication{
				{
					ID:           fmt.Sprintf("%sdose-%s-3", offlineIDPrefix, date),
					MedicationID: offlineIDPrefix + "med-3",
					ScheduleTime: "20:00",
					Status:       entities.DoseStatusPending,
				},
			},
		},
	}
}
