package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// ScheduleService joins the reminder store and the medication catalog into
// the ordered slot list for a selected date.
type ScheduleService struct {
	catalog ports.MedicationCatalog
	store   ports.ReminderStore
	logger  *logger.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(catalog ports.MedicationCatalog, store ports.ReminderStore, appLogger *logger.Logger) *ScheduleService {
	return &ScheduleService{
		catalog: catalog,
		store:   store,
		logger:  appLogger.WithComponent("schedule"),
	}
}

// BuildDay produces the schedule for one calendar date. The function is
// pure over the store contents: unchanged inputs yield structurally
// identical output, so the UI can diff cheaply and tests can assert
// determinism.
//
// Reminders are matched by exact date-string equality. A linked medication
// missing from the catalog renders as a placeholder instead of being
// dropped; a scheduled dose must never silently disappear.
func (s *ScheduleService) BuildDay(date string) []entities.ScheduleSlot {
	reminders := s.store.ByDate(date)
	if len(reminders) == 0 {
		return []entities.ScheduleSlot{}
	}

	slotIndex := make(map[string]int)
	slots := make([]entities.ScheduleSlot, 0)

	for _, rem := range reminders {
		for _, dose := range rem.Medications {
			med, ok := s.catalog.Get(dose.MedicationID)
			if !ok {
				med = entities.UnknownMedication(dose.MedicationID)
			}

			entry := entities.ScheduleEntry{
				Medication:    med,
				Status:        dose.Status,
				ReminderMedID: dose.ID,
			}

			idx, seen := slotIndex[dose.ScheduleTime]
			if !seen {
				idx = len(slots)
				slotIndex[dose.ScheduleTime] = idx
				slots = append(slots, entities.ScheduleSlot{Time: dose.ScheduleTime})
			}
			slots[idx].Entries = append(slots[idx].Entries, entry)
		}
	}

	// Ascending by minutes since midnight; the stable sort keeps ties in
	// reminder insertion order.
	sort.SliceStable(slots, func(i, j int) bool {
		return minutesSinceMidnight(slots[i].Time) < minutesSinceMidnight(slots[j].Time)
	})

	return slots
}

func minutesSinceMidnight(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return h*60 + m
}
