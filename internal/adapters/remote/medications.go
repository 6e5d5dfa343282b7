package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/medtrack/core/internal/adapters/schema"
	"github.com/medtrack/core/internal/domain/entities"
	"github.com/medtrack/core/internal/ports"
)

// Raw record envelopes. Records are decoded into loose maps on purpose:
// field-name resolution belongs to the schema adapter, not the transport.
type medicationListEnvelope struct {
	Medications []map[string]any `json:"medications"`
}

type medicationEnvelope struct {
	Medication map[string]any `json:"medication"`
}

// FetchMedications retrieves and normalizes the user's medication list.
func (c *Client) FetchMedications(ctx context.Context) ([]entities.Medication, error) {
	var envelope medicationListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/medications", nil, &envelope); err != nil {
		return nil, err
	}

	medications := make([]entities.Medication, 0, len(envelope.Medications))
	for _, raw := range envelope.Medications {
		medications = append(medications, schema.NormalizeMedication(raw))
	}
	return medications, nil
}

// CreateMedication posts a full medication record.
func (c *Client) CreateMedication(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error) {
	return c.createMedication(ctx, "/medications", req)
}

// CreateMedicationSimple posts the reduced payload every backend schema
// version accepts.
func (c *Client) CreateMedicationSimple(ctx context.Context, req ports.CreateMedicationRequest) (entities.Medication, error) {
	return c.createMedication(ctx, "/medications/simple", req.Simplified())
}

func (c *Client) createMedication(ctx context.Context, path string, req ports.CreateMedicationRequest) (entities.Medication, error) {
	var envelope medicationEnvelope
	if err := c.doJSON(ctx, http.MethodPost, path, req, &envelope); err != nil {
		return entities.Medication{}, err
	}
	return schema.NormalizeMedication(envelope.Medication), nil
}

// UpdateMedication replaces a medication record.
func (c *Client) UpdateMedication(ctx context.Context, id string, req ports.CreateMedicationRequest) (entities.Medication, error) {
	var envelope medicationEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/medications/"+url.PathEscape(id), req, &envelope); err != nil {
		return entities.Medication{}, err
	}
	return schema.NormalizeMedication(envelope.Medication), nil
}

// DeleteMedication removes a medication record.
func (c *Client) DeleteMedication(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/medications/"+url.PathEscape(id), nil, nil)
}
