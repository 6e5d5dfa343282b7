package ports

// CreateMedicationRequest carries the fields the current backend contract
// honors for medication create/update.
type CreateMedicationRequest struct {
	Name             string `json:"name" validate:"required"`
	Dosage           string `json:"dosage,omitempty"`
	Strength         string `json:"strength,omitempty"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	PillType         string `json:"pill_type,omitempty"`
	IconType         string `json:"icon_type,omitempty"`
	Color            string `json:"color,omitempty"`
	Frequency        string `json:"frequency,omitempty"`
	DefaultTime      string `json:"default_time,omitempty"`
	WhenToTake       string `json:"when_to_take,omitempty"`
	ActiveIngredient string `json:"active_ingredient,omitempty"`
	SideEffects      string `json:"side_effects,omitempty"`
}

// Simplified strips the request down to the fields known to exist in every
// backend schema version, for the schema-mismatch retry path.
func (r CreateMedicationRequest) Simplified() CreateMedicationRequest {
	return CreateMedicationRequest{
		Name:     r.Name,
		Dosage:   r.Dosage,
		IconType: r.IconType,
	}
}

// ReminderMedicationInput links one medication into a reminder being created.
type ReminderMedicationInput struct {
	MedicationID string `json:"medicationId" validate:"required"`
	ScheduleTime string `json:"scheduleTime,omitempty"`
}

// CreateReminderRequest carries a reminder creation. Date and at least one
// linked medication are the two fields the backend rejects requests for, so
// they are validated before the wire.
type CreateReminderRequest struct {
	Date        string                    `json:"date" validate:"required"`
	Title       string                    `json:"title,omitempty"`
	Time        string                    `json:"time,omitempty"`
	RepeatType  string                    `json:"repeat_type,omitempty"`
	RepeatDays  []int                     `json:"repeat_days,omitempty"`
	Medications []ReminderMedicationInput `json:"medications" validate:"required,min=1,dive"`
}

// Simplified reduces the payload to the universally accepted fields.
func (r CreateReminderRequest) Simplified() CreateReminderRequest {
	return CreateReminderRequest{
		Date:        r.Date,
		Time:        r.Time,
		Medications: r.Medications,
	}
}
