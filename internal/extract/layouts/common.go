// Package layouts holds the per-layout regex parsers that turn raw OCR
// text into typed extraction output. Each layout reports a match score
// for the text it was written for; the registry runs the best scorer.
package layouts

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/crossval/internal/extract"
)

const dayMonthYear = "02/01/2006"

var (
	cnpjPattern = regexp.MustCompile(`\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`)
	datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// matchScore counts how many anchor patterns appear in the text.
func matchScore(text string, anchors []*regexp.Regexp) float64 {
	if len(anchors) == 0 {
		return 0
	}
	found := 0
	for _, a := range anchors {
		if a.MatchString(text) {
			found++
		}
	}
	return float64(found) / float64(len(anchors))
}

// stringField extracts capture group 1 of re as a high-confidence field.
func stringField(text string, re *regexp.Regexp) *extract.Field[string] {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return extract.High(strings.TrimSpace(m[1]), m[0])
}

// dateField extracts capture group 1 of re as a DD/MM/YYYY calendar date.
// A label-anchored hit is high confidence; when the label is missing the
// first bare date in the text is used at low confidence.
func dateField(text string, re *regexp.Regexp) *extract.Field[time.Time] {
	m := re.FindStringSubmatch(text)
	if m != nil {
		if t, err := time.ParseInLocation(dayMonthYear, m[1], time.UTC); err == nil {
			return extract.High(t, m[0])
		}
	}
	raw := datePattern.FindString(text)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(dayMonthYear, raw, time.UTC)
	if err != nil {
		return nil
	}
	return extract.Low(t, raw)
}

// section returns the text between the first hit of start and the first
// following hit of any stop pattern.
func section(text string, start *regexp.Regexp, stops ...*regexp.Regexp) string {
	loc := start.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	end := len(rest)
	for _, stop := range stops {
		if sl := stop.FindStringIndex(rest); sl != nil && sl[0] < end {
			end = sl[0]
		}
	}
	return rest[:end]
}

// entityFrom pulls a name and tax ID out of one actor section. The name
// is high confidence only when its label anchored the match; a tax ID
// found without its label is kept at low confidence.
func entityFrom(sectionText string, nameRe, taxIDRe *regexp.Regexp) *extract.EntityInfo {
	if sectionText == "" {
		return nil
	}
	name := stringField(sectionText, nameRe)
	taxID := stringField(sectionText, taxIDRe)
	if taxID == nil {
		if raw := cnpjPattern.FindString(sectionText); raw != "" {
			taxID = extract.Low(raw, raw)
		}
	}
	if name == nil && taxID == nil {
		return nil
	}
	info := &extract.EntityInfo{}
	if name != nil {
		info.Name = *name
	}
	if taxID != nil {
		info.TaxID = *taxID
	}
	return info
}

// addressFrom pulls street, city and state fields out of an actor
// section, or nil when none of the three labels matched.
func addressFrom(sectionText string, streetRe, cityRe, stateRe *regexp.Regexp) *extract.AddressInfo {
	street := stringField(sectionText, streetRe)
	city := stringField(sectionText, cityRe)
	state := stringField(sectionText, stateRe)
	if street == nil && city == nil && state == nil {
		return nil
	}
	info := &extract.AddressInfo{}
	if street != nil {
		info.Address = *street
	}
	if city != nil {
		info.City = *city
	}
	if state != nil {
		info.State = *state
	}
	return info
}

var wasteLinePattern = regexp.MustCompile(`(?m)^\s*(\d{2}\s?\d{2}\s?\d{2})?\s*[-–]?\s*([A-Za-zÀ-ÿ][^\d\n]{3,}?)\s+([\d.,]+)\s*(kg|t|ton|toneladas?|m³|m3|l)\s*$`)

// wasteEntries parses the declared waste table lines.
func wasteEntries(text string) []extract.WasteTypeEntry {
	var entries []extract.WasteTypeEntry
	for _, m := range wasteLinePattern.FindAllStringSubmatch(text, -1) {
		entry := extract.WasteTypeEntry{
			Code:        strings.Join(strings.Fields(m[1]), ""),
			Description: strings.TrimSpace(m[2]),
			Unit:        strings.ToLower(m[4]),
		}
		if q, ok := parseDecimal(m[3]); ok {
			entry.Quantity = &q
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseDecimal reads a Brazilian-formatted decimal ("1.234,56").
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
