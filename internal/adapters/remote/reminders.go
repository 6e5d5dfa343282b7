package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/medtrack/core/internal/adapters/schema"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/ports"
)

type reminderListEnvelope struct {
	Reminders []map[string]any `json:"reminders"`
}

// FetchRemindersByDate retrieves the reminders materialized for one
// calendar date, with their medication links joined in.
func (c *Client) FetchRemindersByDate(ctx context.Context, date string) ([]entities.Reminder, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("include_medications", "true")

	var envelope reminderListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/reminders?"+query.Encode(), nil, &envelope); err != nil {
		return nil, err
	}

	reminders := make([]entities.Reminder, 0, len(envelope.Reminders))
	for _, raw := range envelope.Reminders {
		reminders = append(reminders, schema.NormalizeReminder(raw))
	}
	return reminders, nil
}

// CreateReminder posts a reminder creation.
func (c *Client) CreateReminder(ctx context.Context, req ports.CreateReminderRequest) (entities.Reminder, error) {
	var raw map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/reminders", req, &raw); err != nil {
		return entities.Reminder{}, err
	}
	return schema.NormalizeReminder(raw), nil
}

// SetDoseStatus commits one status transition remotely.
func (c *Client) SetDoseStatus(ctx context.Context, reminderMedID string, status entities.DoseStatus) error {
	var action string
	switch status {
	case entities.DoseStatusTaken:
		action = "taken"
	case entities.DoseStatusSkipped:
		action = "skipped"
	case entities.DoseStatusPending:
		action = "reset"
	default:
		return entities.ErrInvalidStatus
	}

	path := "/reminders/medications/" + url.PathEscape(reminderMedID) + "/" + action
	return c.doJSON(ctx, http.MethodPut, path, nil, nil)
}
