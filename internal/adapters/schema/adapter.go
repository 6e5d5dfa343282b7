// Package schema maps raw backend objects of unknown or variable shape to
// canonical entities. The backend schema has evolved over time and old and
// new field names coexist in the same response stream, so every lookup walks
// an explicit, ordered field-mapping table and every unresolvable field
// takes a documented default. Normalization never fails on malformed input.
package schema

import (
	"strconv"
	"strings"
	"time"
)

// fieldPath addresses a value inside a raw record, possibly nested
// (e.g. {"schedule", "dosage"}).
type fieldPath []string

// lookup walks the path through nested maps. Returns nil when any segment
// is missing or not an object.
func (p fieldPath) lookup(raw map[string]any) any {
	var cur any = raw
	for _, key := range p {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

// firstString resolves the first non-empty string along an ordered list of
// candidate paths. The order of the table is the priority contract.
func firstString(raw map[string]any, paths []fieldPath) string {
	for _, p := range paths {
		v := p.lookup(raw)
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// firstInt resolves the first numeric value along the candidate paths.
func firstInt(raw map[string]any, paths []fieldPath) (int, bool) {
	for _, p := range paths {
		switch v := p.lookup(raw).(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// NormalizeClock truncates any HH:MM:SS or AM/PM-suffixed string to a
// canonical 24h HH:MM. Parse failure defaults to "00:00" rather than
// failing the whole record.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "00:00"
	}

	layouts := []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.Format("15:04")
		}
	}

	return "00:00"
}

// NormalizeDate reduces any recognized date representation to a canonical
// YYYY-MM-DD string. Dates stay strings end to end; a timezone-bearing
// timestamp here would reintroduce the off-by-one-day drift the canonical
// form exists to avoid. Returns "" when nothing parses.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	layouts := []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006/01/02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}

// Today returns the current calendar date in canonical form.
func Today() string {
	return time.Now().Format("2006-01-02")
}

func splitDosage(s string) (amount, unit string) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	amount = s[:i]
	unit = strings.TrimSpace(s[i:])
	return amount, unit
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
