package schema

import (
	"strings"
	"time"

	"github.com/medtrack/core/internal/domain/entities"
)

// Ordered field-mapping tables for medications. Priority order is the
// visible contract here, not implicit code order; tests assert it directly.
var (
	medicationIDPaths     = []fieldPath{{"medication_id"}, {"medicationId"}, {"id"}, {"_id"}}
	medicationNamePaths   = []fieldPath{{"name"}, {"medication_name"}, {"medicationName"}}
	medicationDosagePaths = []fieldPath{{"dosage"}, {"strength"}, {"schedule", "dosage"}, {"inventory", "unit"}}
	pillTypePaths         = []fieldPath{{"pill_type"}, {"pillType"}}
	iconTypePaths         = []fieldPath{{"icon_type"}, {"iconType"}, {"icon"}}
	colorPaths            = []fieldPath{{"color"}, {"pill_color"}}
	frequencyPaths        = []fieldPath{{"frequency"}, {"frequency_label"}, {"schedule", "frequency"}}
	defaultTimePaths      = []fieldPath{{"default_time"}, {"defaultTime"}, {"schedule", "time"}, {"time"}}
	whenToTakePaths       = []fieldPath{{"when_to_take"}, {"whenToTake"}, {"meal_relation"}}
	ingredientPaths       = []fieldPath{{"active_ingredient"}, {"activeIngredient"}}
	sideEffectsPaths      = []fieldPath{{"side_effects"}, {"sideEffects"}}
	remainingPaths        = []fieldPath{{"remaining_quantity"}, {"remainingQuantity"}, {"inventory", "remaining"}}
	unitPaths             = []fieldPath{{"unit"}, {"dosage_unit"}, {"inventory", "unit"}}
	startDatePaths        = []fieldPath{{"start_date"}, {"startDate"}, {"schedule", "start_date"}}
	endDatePaths          = []fieldPath{{"end_date"}, {"endDate"}, {"schedule", "end_date"}}
	refillDatePaths       = []fieldPath{{"refill_date"}, {"refillDate"}, {"inventory", "refill_date"}}
)

// iconPillTypes infers the pill visual from the medication's icon category.
var iconPillTypes = map[string]entities.PillVisualType{
	"antidepressant": entities.PillPurpleWhite,
	"general":        entities.PillBlue,
	"hypertension":   entities.PillOrange,
}

// colorPillTypes maps the four known color constants back to a visual type.
var colorPillTypes = map[string]entities.PillVisualType{
	strings.ToUpper(entities.PillWhite.Color()):       entities.PillWhite,
	strings.ToUpper(entities.PillBlue.Color()):        entities.PillBlue,
	strings.ToUpper(entities.PillOrange.Color()):      entities.PillOrange,
	strings.ToUpper(entities.PillPurpleWhite.Color()): entities.PillPurpleWhite,
}

// NormalizeMedication maps a raw backend medication object to the canonical
// entity. It never returns an error: any field it cannot resolve takes an
// explicit default. The pill visual type is resolved exactly once here and
// never re-inferred downstream.
func NormalizeMedication(raw map[string]any) entities.Medication {
	if raw == nil {
		raw = map[string]any{}
	}

	med := entities.Medication{
		ID:        firstString(raw, medicationIDPaths),
		Name:      firstString(raw, medicationNamePaths),
		RawSource: raw,
	}

	med.PillVisualType = resolvePillType(raw)
	med.Color = med.PillVisualType.Color()
	med.IconType = firstString(raw, iconTypePaths)

	med.DosageAmount, med.DosageUnit = resolveDosage(raw)
	med.FrequencyLabel = firstString(raw, frequencyPaths)
	med.DefaultTime = NormalizeClock(firstString(raw, defaultTimePaths))
	med.WhenToTake = resolveWhenToTake(firstString(raw, whenToTakePaths))
	med.ActiveIngredient = firstString(raw, ingredientPaths)
	med.SideEffects = firstString(raw, sideEffectsPaths)

	if n, ok := firstInt(raw, remainingPaths); ok && n >= 0 {
		med.RemainingQuantity = n
	}
	med.Unit = firstString(raw, unitPaths)
	if med.Unit == "" {
		med.Unit = med.DosageUnit
	}

	// Absent dates are expected, not exceptional: default to today and
	// today + 1 month without logging an error.
	med.StartDate = NormalizeDate(firstString(raw, startDatePaths))
	if med.StartDate == "" {
		med.StartDate = Today()
	}
	med.EndDate = NormalizeDate(firstString(raw, endDatePaths))
	if med.EndDate == "" {
		med.EndDate = time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	}
	med.RefillDate = NormalizeDate(firstString(raw, refillDatePaths))

	return med
}

// resolvePillType applies the fixed priority cascade: explicit pill type
// field, then icon-type inference, then a color hex matching one of the
// four known constants, then white.
func resolvePillType(raw map[string]any) entities.PillVisualType {
	if explicit := firstString(raw, pillTypePaths); explicit != "" {
		switch p := entities.PillVisualType(strings.ToLower(explicit)); p {
		case entities.PillWhite, entities.PillBlue, entities.PillOrange, entities.PillPurpleWhite:
			return p
		}
	}

	if icon := strings.ToLower(firstString(raw, iconTypePaths)); icon != "" {
		if p, ok := iconPillTypes[icon]; ok {
			return p
		}
	}

	if hex := strings.ToUpper(firstString(raw, colorPaths)); hex != "" {
		if p, ok := colorPillTypes[hex]; ok {
			return p
		}
	}

	return entities.PillWhite
}

// resolveDosage resolves amount and unit from whichever dosage-bearing
// field is present, in table order. A bare "20mg" style string is split
// into its numeric and unit parts.
func resolveDosage(raw map[string]any) (amount, unit string) {
	dosage := firstString(raw, medicationDosagePaths)
	if dosage == "" {
		return "1", "dose"
	}

	amount, unit = splitDosage(dosage)
	if amount == "" {
		amount = "1"
	}
	if unit == "" {
		unit = "dose"
	}
	return amount, unit
}

func resolveWhenToTake(s string) entities.WhenToTake {
	switch w := entities.WhenToTake(strings.ToLower(strings.TrimSpace(s))); w {
	case entities.WhenBeforeMeal, entities.WhenWithMeal, entities.WhenAfterMeal, entities.WhenEmptyStomach, entities.WhenCustom:
		return w
	}
	return entities.WhenCustom
}
