package compare

import (
	"regexp"
	"strings"
	"time"
)

// NormalizeTaxID strips the punctuation a CNPJ/CPF is usually printed
// with, so formatted and bare identifiers compare equal.
func NormalizeTaxID(id string) string {
	replacer := strings.NewReplacer(" ", "", ".", "", "/", "", "-", "")
	return strings.ToLower(replacer.Replace(id))
}

// NormalizeWasteCode reduces an IBAMA waste code to a comparable form.
func NormalizeWasteCode(code string) string {
	return strings.ToLower(strings.Join(strings.Fields(code), ""))
}

// unitToKg maps declared quantity units to their kilogram factor.
// Volumetric units are deliberately absent: a m³ cannot be reconciled
// against a scale reading without a density.
var unitToKg = map[string]float64{
	"kg":        1,
	"t":         1000,
	"ton":       1000,
	"tonelada":  1000,
	"toneladas": 1000,
}

// NormalizeQuantityToKg converts a declared quantity to kilograms.
// The second return is false when the unit is unknown or not
// mass-convertible.
func NormalizeQuantityToKg(quantity float64, unit string) (float64, bool) {
	factor, ok := unitToKg[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, false
	}
	return quantity * factor, true
}

// AddressString builds the single comparable string used for fuzzy
// address matching from its parts. Empty parts are skipped.
func AddressString(address, city, state string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{address, city, state} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Period is a parsed processing-period range. Both bounds are calendar
// dates at UTC midnight; containment is inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(date time.Time) bool {
	d := midnightUTC(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

const dayMonthYear = "02/01/2006"

var periodPattern = regexp.MustCompile(`(?i)(\d{2}/\d{2}/\d{4})\s*(?:até|ate|a)\s*(\d{2}/\d{2}/\d{4})`)

// ParsePeriod parses the free-text "DD/MM/YYYY a|ate DD/MM/YYYY" range a
// CDF states its processing period in.
func ParsePeriod(s string) (Period, bool) {
	m := periodPattern.FindStringSubmatch(s)
	if m == nil {
		return Period{}, false
	}
	start, err := time.ParseInLocation(dayMonthYear, m[1], time.UTC)
	if err != nil {
		return Period{}, false
	}
	end, err := time.ParseInLocation(dayMonthYear, m[2], time.UTC)
	if err != nil {
		return Period{}, false
	}
	if end.Before(start) {
		return Period{}, false
	}
	return Period{Start: start, End: end}, true
}

// localCalendarDate projects a UTC instant onto the calendar date it falls
// on in loc, returned as UTC midnight so whole-day arithmetic is exact.
func localCalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the absolute whole-day difference between two
// calendar dates.
func daysBetween(a, b time.Time) int {
	diff := midnightUTC(a).Sub(midnightUTC(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}
