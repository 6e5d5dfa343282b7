package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/core/internal/adapters/memory"
	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/infrastructure/logger"
)

func statusFixture(api *fakeReminderAPI, synthetic bool) (*memory.ReminderStore, *StatusService) {
	store := memory.NewReminderStore()
	store.Upsert(entities.Reminder{
		ID:        "r1",
		Date:      "2025-06-10",
		Time:      "08:00",
		Synthetic: synthetic,
		Medications: []entities.ReminderMedication{
			{ID: "rm1", MedicationID: "m1", ScheduleTime: "08:00", Status: entities.DoseStatusPending},
		},
	})
	return store, NewStatusService(store, api, logger.NewNop())
}

func doseStatus(t *testing.T, store *memory.ReminderStore, id string) entities.DoseStatus {
	t.Helper()
	ref, ok := store.Dose(id)
	require.True(t, ok)
	return ref.Dose.Status
}

func TestStatusRoundTrip(t *testing.T) {
	api := &fakeReminderAPI{}
	store, svc := statusFixture(api, false)
	ctx := context.Background()

	require.NoError(t, svc.MarkTaken(ctx, "rm1"))
	assert.Equal(t, entities.DoseStatusTaken, doseStatus(t, store, "rm1"))

	require.NoError(t, svc.Reset(ctx, "rm1"))
	assert.Equal(t, entities.DoseStatusPending, doseStatus(t, store, "rm1"))

	require.NoError(t, svc.MarkSkipped(ctx, "rm1"))
	assert.Equal(t, entities.DoseStatusSkipped, doseStatus(t, store, "rm1"))

	assert.Equal(t, 3, api.statusCalls)
}

func TestIllegalTransitionIsANoOp(t *testing.T) {
	api := &fakeReminderAPI{}
	store, svc := statusFixture(api, false)
	ctx := context.Background()

	require.NoError(t, svc.MarkTaken(ctx, "rm1"))

	// Duplicate tap: taken -> skipped is illegal, succeeds without effect.
	require.NoError(t, svc.MarkSkipped(ctx, "rm1"))
	assert.Equal(t, entities.DoseStatusTaken, doseStatus(t, store, "rm1"))
	assert.Equal(t, 1, api.statusCalls, "illegal transitions never reach the network")
}

func TestRemoteFailureRollsBack(t *testing.T) {
	api := &fakeReminderAPI{
		setStatus: func(ctx context.Context, reminderMedID string, status entities.DoseStatus) error {
			return apperrors.Connectivity("backend down", nil)
		},
	}
	store, svc := statusFixture(api, false)

	err := svc.MarkTaken(context.Background(), "rm1")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindConnectivity, apperrors.KindOf(err))
	assert.Equal(t, entities.DoseStatusPending, doseStatus(t, store, "rm1"),
		"optimistic value must not survive a rejected commit")
}

func TestSyntheticDoseSkipsRemoteCommit(t *testing.T) {
	api := &fakeReminderAPI{}
	store, svc := statusFixture(api, true)

	require.NoError(t, svc.MarkTaken(context.Background(), "rm1"))

	assert.Equal(t, entities.DoseStatusTaken, doseStatus(t, store, "rm1"))
	assert.Zero(t, api.statusCalls, "synthetic records have no server-side counterpart")
}

func TestUnknownDoseIsNotFound(t *testing.T) {
	api := &fakeReminderAPI{}
	_, svc := statusFixture(api, false)

	err := svc.MarkTaken(context.Background(), "rm-missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.ErrorIs(t, err, entities.ErrDoseNotFound)
}
