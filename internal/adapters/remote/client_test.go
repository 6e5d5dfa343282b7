package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/core/internal/domain/apperrors"
	"github.com/medtrack/core/internal/infrastructure/config"
	"github.com/medtrack/core/internal/infrastructure/logger"
)

func testClient(t *testing.T, baseURL string, tokens *StaticTokenSource) *Client {
	t.Helper()
	if tokens == nil {
		tokens = NewStaticTokenSource("", "")
	}
	return NewClient(config.BackendConfig{
		BaseURL:      baseURL,
		FetchTimeout: 5 * time.Second,
		RateLimit:    100,
		RateBurst:    100,
	}, tokens, logger.NewNop())
}

func TestFetchMedicationsNormalizesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/medications", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"medications":[{"medication_id":"m1","name":"Atorvastatin","dosage":"20mg","icon_type":"general"}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)
	meds, err := c.FetchMedications(context.Background())

	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "m1", meds[0].ID)
	assert.Equal(t, "20", meds[0].DosageAmount)
	assert.Equal(t, "mg", meds[0].DosageUnit)
}

func TestUnauthorizedTriggersSingleRefresh(t *testing.T) {
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		if len(authHeaders) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"medications":[]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, NewStaticTokenSource("stale", "fresh"))
	_, err := c.FetchMedications(context.Background())

	require.NoError(t, err)
	require.Len(t, authHeaders, 2, "exactly one retry after the refresh")
	assert.Equal(t, "Bearer stale", authHeaders[0])
	assert.Equal(t, "Bearer fresh", authHeaders[1])
}

func TestUnauthorizedAfterRefreshIsTerminal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, NewStaticTokenSource("stale", "also-stale"))
	_, err := c.FetchMedications(context.Background())

	require.Error(t, err)
	assert.Equal(t, 2, calls, "no second refresh, no third attempt")
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestContextTokenOverridesConfiguredSource(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"medications":[]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, NewStaticTokenSource("configured", ""))
	ctx := WithToken(context.Background(), "per-request")
	_, err := c.FetchMedications(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Bearer per-request", got)
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected apperrors.Kind
	}{
		{"not found", http.StatusNotFound, "", apperrors.KindNotFound},
		{"unprocessable entity", http.StatusUnprocessableEntity, "", apperrors.KindSchemaMismatch},
		{"bad request about a field", http.StatusBadRequest, `{"error":"unknown field pill_type"}`, apperrors.KindSchemaMismatch},
		{"bad request about a column", http.StatusBadRequest, `column "icon" does not exist`, apperrors.KindSchemaMismatch},
		{"plain bad request", http.StatusBadRequest, "date is required", apperrors.KindValidation},
		{"server error", http.StatusInternalServerError, "", apperrors.KindConnectivity},
		{"bad gateway", http.StatusBadGateway, "", apperrors.KindConnectivity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyStatus(tt.status, []byte(tt.body))
			assert.Equal(t, tt.expected, apperrors.KindOf(err))
		})
	}
}

func TestSetDoseStatusPaths(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)

	require.NoError(t, c.SetDoseStatus(context.Background(), "rm1", "taken"))
	assert.Equal(t, "/reminders/medications/rm1/taken", path)

	require.NoError(t, c.SetDoseStatus(context.Background(), "rm1", "pending"))
	assert.Equal(t, "/reminders/medications/rm1/reset", path)

	require.Error(t, c.SetDoseStatus(context.Background(), "rm1", "vanished"))
}

func TestFetchRemindersQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-06-10", r.URL.Query().Get("date"))
		assert.Equal(t, "true", r.URL.Query().Get("include_medications"))
		w.Write([]byte(`{"reminders":[{"id":"r1","date":"2025-06-10","time":"08:00"}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, nil)
	reminders, err := c.FetchRemindersByDate(context.Background(), "2025-06-10")

	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "r1", reminders[0].ID)
}
