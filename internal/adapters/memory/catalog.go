// Package memory holds the session-scoped stores. Nothing here is durable:
// every successful fetch is a full snapshot replace, which sidesteps
// stale-entry accumulation, and the process owns the only copy.
package memory

import (
	"sync"

	"github.com/medtrack/core/internal/domain/entities"
)

// MedicationCatalog holds the normalized medication set for the current
// user, keyed by id, preserving fetch order for listing.
type MedicationCatalog struct {
	mu    sync.RWMutex
	byID  map[string]entities.Medication
	order []string
}

// NewMedicationCatalog creates an empty catalog.
func NewMedicationCatalog() *MedicationCatalog {
	return &MedicationCatalog{byID: make(map[string]entities.Medication)}
}

// ReplaceAll swaps the whole catalog for the given snapshot.
func (c *MedicationCatalog) ReplaceAll(medications []entities.Medication) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[string]entities.Medication, len(medications))
	c.order = c.order[:0]
	for _, med := range medications {
		if _, seen := c.byID[med.ID]; !seen {
			c.order = append(c.order, med.ID)
		}
		c.byID[med.ID] = med
	}
}

// Get looks up one medication by id.
func (c *MedicationCatalog) Get(id string) (entities.Medication, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	med, ok := c.byID[id]
	return med, ok
}

// List returns a snapshot of the catalog in fetch order.
func (c *MedicationCatalog) List() []entities.Medication {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entities.Medication, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Upsert mirrors a single medication after a successful remote mutation.
func (c *MedicationCatalog) Upsert(med entities.Medication) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, seen := c.byID[med.ID]; !seen {
		c.order = append(c.order, med.ID)
	}
	c.byID[med.ID] = med
}

// Remove drops a medication after a successful remote delete.
func (c *MedicationCatalog) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
