package memory

import (
	"sync"

	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/ports"
)

// ReminderStore holds the normalized reminders for the queried date range.
// Insertion order is preserved per snapshot; ByDate relies on it for the
// schedule builder's stable tie-breaking.
type ReminderStore struct {
	mu       sync.RWMutex
	byID     map[string]*entities.Reminder
	order    []string
	inFlight map[string]int // reminderMedID -> nesting count
}

// NewReminderStore creates an empty store.
func NewReminderStore() *ReminderStore {
	return &ReminderStore{
		byID:     make(map[string]*entities.Reminder),
		inFlight: make(map[string]int),
	}
}

// ReplaceAll swaps the store for the given snapshot, with one exception:
// any entry holding a dose whose remote commit is still in flight is
// merge-preserved, so a refresh racing an optimistic transition cannot
// discard the edit. When the snapshot carries the same reminder id, the
// in-flight dose's local status is re-applied on top of the fresh copy;
// when it does not, the old entry is retained whole.
func (s *ReminderStore) ReplaceAll(reminders []entities.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pinned := make(map[string]entities.ReminderMedication)
	pinnedParents := make(map[string]*entities.Reminder)
	for doseID := range s.inFlight {
		if rem, dose, ok := s.findDoseLocked(doseID); ok {
			pinned[doseID] = *dose
			pinnedParents[doseID] = rem
		}
	}

	s.byID = make(map[string]*entities.Reminder, len(reminders))
	s.order = s.order[:0]
	for i := range reminders {
		rem := reminders[i]
		if _, seen := s.byID[rem.ID]; !seen {
			s.order = append(s.order, rem.ID)
		}
		s.byID[rem.ID] = &rem
	}

	for doseID, dose := range pinned {
		if _, _, ok := s.findDoseLocked(doseID); ok {
			s.updateStatusLocked(doseID, dose.Status)
			continue
		}
		old := pinnedParents[doseID]
		if _, seen := s.byID[old.ID]; !seen {
			s.byID[old.ID] = old
			s.order = append(s.order, old.ID)
		}
	}
}

// ByDate returns the reminders whose date equals the target, using exact
// string equality. Comparing date objects here would reintroduce
// timezone-induced off-by-one-day bugs.
func (s *ReminderStore) ByDate(date string) []entities.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.Reminder
	for _, id := range s.order {
		if rem := s.byID[id]; rem.Date == date {
			out = append(out, *rem)
		}
	}
	return out
}

// Upsert inserts or replaces one reminder.
func (s *ReminderStore) Upsert(rem entities.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.byID[rem.ID]; !seen {
		s.order = append(s.order, rem.ID)
	}
	s.byID[rem.ID] = &rem
}

// Dose resolves a reminder-medication link by its id.
func (s *ReminderStore) Dose(reminderMedID string) (ports.DoseRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rem, dose, ok := s.findDoseLocked(reminderMedID)
	if !ok {
		return ports.DoseRef{}, false
	}
	return ports.DoseRef{ReminderID: rem.ID, Synthetic: rem.Synthetic, Dose: *dose}, true
}

// UpdateStatus sets the status of one dose.
func (s *ReminderStore) UpdateStatus(reminderMedID string, status entities.DoseStatus) error {
	if !status.Valid() {
		return entities.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.updateStatusLocked(reminderMedID, status) {
		return entities.ErrDoseNotFound
	}
	return nil
}

// BeginTransition pins a dose while its remote commit is in flight.
func (s *ReminderStore) BeginTransition(reminderMedID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[reminderMedID]++
}

// EndTransition releases the pin.
func (s *ReminderStore) EndTransition(reminderMedID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[reminderMedID] <= 1 {
		delete(s.inFlight, reminderMedID)
		return
	}
	s.inFlight[reminderMedID]--
}

func (s *ReminderStore) findDoseLocked(reminderMedID string) (*entities.Reminder, *entities.ReminderMedication, bool) {
	for _, id := range s.order {
		rem := s.byID[id]
		for i := range rem.Medications {
			if rem.Medications[i].ID == reminderMedID {
				return rem, &rem.Medications[i], true
			}
		}
	}
	return nil, nil, false
}

func (s *ReminderStore) updateStatusLocked(reminderMedID string, status entities.DoseStatus) bool {
	_, dose, ok := s.findDoseLocked(reminderMedID)
	if !ok {
		return false
	}
	dose.Status = status
	return true
}
