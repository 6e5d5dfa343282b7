package schema

import (
	"github.com/medtrack/core/internal/domain/entities"
)

// Ordered field-mapping tables for reminders.
var (
	reminderIDPaths    = []fieldPath{{"reminder_id"}, {"reminderId"}, {"id"}}
	reminderDatePaths  = []fieldPath{{"date"}, {"reminder_date"}}
	reminderTimePaths  = []fieldPath{{"time"}, {"reminder_time"}}
	reminderTitlePaths = []fieldPath{{"title"}, {"name"}}
	repeatTypePaths    = []fieldPath{{"repeat_type"}, {"repeatType"}}
	repeatDaysPaths    = []fieldPath{{"repeat_days"}, {"repeatDays"}}

	doseIDPaths     = []fieldPath{{"reminder_medication_id"}, {"reminderMedicationId"}, {"id"}}
	doseMedIDPaths  = []fieldPath{{"medication_id"}, {"medicationId"}}
	doseTimePaths   = []fieldPath{{"schedule_time"}, {"scheduleTime"}, {"time"}}
	doseStatusPaths = []fieldPath{{"status"}}
)

// NormalizeReminder maps a raw backend reminder object to the canonical
// entity. Linked medications are resolved from whichever collection the
// current backend version emits: the joined "reminder_medications" array,
// the older "medications" array, or a bare top-level medication_id.
func NormalizeReminder(raw map[string]any) entities.Reminder {
	if raw == nil {
		raw = map[string]any{}
	}

	rem := entities.Reminder{
		ID:         firstString(raw, reminderIDPaths),
		Date:       NormalizeDate(firstString(raw, reminderDatePaths)),
		Time:       NormalizeClock(firstString(raw, reminderTimePaths)),
		Title:      firstString(raw, reminderTitlePaths),
		RepeatType: resolveRepeatType(firstString(raw, repeatTypePaths)),
	}

	rem.RepeatDays = resolveRepeatDays(raw)
	rem.Medications = resolveLinkedMedications(raw, rem.Time)

	return rem
}

func resolveRepeatType(s string) entities.RepeatType {
	switch r := entities.RepeatType(s); r {
	case entities.RepeatDaily, entities.RepeatWeekly, entities.RepeatMonthly, entities.RepeatAsNeeded:
		return r
	}
	return entities.RepeatDaily
}

// resolveRepeatDays extracts weekday numbers; only meaningful for weekly
// repeats, harmless otherwise.
func resolveRepeatDays(raw map[string]any) []int {
	for _, p := range repeatDaysPaths {
		list, ok := p.lookup(raw).([]any)
		if !ok {
			continue
		}
		days := make([]int, 0, len(list))
		for _, v := range list {
			if n, ok := asInt(v); ok {
				days = append(days, n)
			}
		}
		if len(days) > 0 {
			return days
		}
	}
	return nil
}

func resolveLinkedMedications(raw map[string]any, reminderTime string) []entities.ReminderMedication {
	for _, key := range []string{"reminder_medications", "medications"} {
		list, ok := raw[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		doses := make([]entities.ReminderMedication, 0, len(list))
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			doses = append(doses, normalizeDose(entry, reminderTime))
		}
		if len(doses) > 0 {
			return doses
		}
	}

	// Oldest schema: a single medication id on the reminder itself.
	if medID := firstString(raw, doseMedIDPaths); medID != "" {
		return []entities.ReminderMedication{{
			ID:           firstString(raw, reminderIDPaths) + ":" + medID,
			MedicationID: medID,
			ScheduleTime: reminderTime,
			Status:       entities.DoseStatusPending,
		}}
	}

	return nil
}

func normalizeDose(raw map[string]any, reminderTime string) entities.ReminderMedication {
	dose := entities.ReminderMedication{
		ID:           firstString(raw, doseIDPaths),
		MedicationID: firstString(raw, doseMedIDPaths),
		Status:       resolveStatus(firstString(raw, doseStatusPaths)),
	}

	if t := firstString(raw, doseTimePaths); t != "" {
		dose.ScheduleTime = NormalizeClock(t)
	} else {
		dose.ScheduleTime = reminderTime
	}

	return dose
}

// resolveStatus defaults anything unrecognized to pending; a malformed
// status must not fail the whole record.
func resolveStatus(s string) entities.DoseStatus {
	if status := entities.DoseStatus(s); status.Valid() {
		return status
	}
	return entities.DoseStatusPending
}
