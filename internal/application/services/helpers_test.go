package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medtrack/core/internal/adapters/remote"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/config"
	"github.com/medtrack/core/internal/infrastructure/logger"
	"github.com/medtrack/core/internal/ports"
)

// reachableGuard returns a guard whose probe always succeeds, backed by a
// throwaway health endpoint.
func reachableGuard(t *testing.T) *remote.Guard {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return remote.NewGuard(config.BackendConfig{
		BaseURL:       srv.URL,
		ProbeTimeout:  2 * time.Second,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	}, logger.NewNop())
}

// unreachableGuard returns a guard whose probe always fails.
func unreachableGuard(t *testing.T) *remote.Guard {
	t.Helper()
	return remote.NewGuard(config.BackendConfig{
		BaseURL:       "http://127.0.0.1:1",
		ProbeTimeout:  time.Second,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	}, logger.NewNop())
}

type fakeMedicationAPI struct {
	fetch        func(ctx context.Context) ([]entities.Medication, error)
	create       func(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error)
	createSimple func(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error)
	update       func(ctx context.Context, id string, req ports.CreateMedicationRequest) (entities.Medication, error)
	delete       func(ctx context.Context, id string) error
}

func (f *fakeMedicationAPI) FetchMedications(ctx context.Context) ([]entities.Medication, error) {
	return f.fetch(ctx)
}

func (f *fakeMedicationAPI) CreateMedication(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error) {
	return f.create(ctx, req)
}

func (f *fakeMedicationAPI) CreateMedicationSimple(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error) {
	return f.createSimple(ctx, req)
}

func (f *fakeMedicationAPI) UpdateMedication(ctx context.Context, id string, req ports.CreateMedicationRequest) (entities.Medication, error) {
	return f.update(ctx, id, req)
}

func (f *fakeMedicationAPI) DeleteMedication(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

type fakeReminderAPI struct {
	fetchByDate func(ctx context.Context, date string) ([]entities.Reminder, error)
	create      func(ctx context.Context, req ports.CreateReminderRequest) (entities.Reminder, error)
	setStatus   func(ctx context.Context, reminderMedID string, status entities.DoseStatus) error
	statusCalls int
}

func (f *fakeReminderAPI) FetchRemindersByDate(ctx context.Context, date string) ([]entities.Reminder, error) {
	return f.fetchByDate(ctx, date)
}

func (f *fakeReminderAPI) CreateReminder(ctx context.Context, req ports.CreateReminderRequest) (entities.Reminder, error) {
	return f.create(ctx, req)
}

func (f *fakeReminderAPI) SetDoseStatus(ctx context.Context, reminderMedID string, status entities.DoseStatus) error {
	f.statusCalls++
	if f.setStatus == nil {
		return nil
	}
	return f.setStatus(ctx, reminderMedID, status)
}
