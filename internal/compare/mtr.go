package compare

import (
	"strings"

	"github.com/yourorg/crossval/internal/extract"
)

// MTRNumbersDebug snapshots a cross-manifest number check. IsMatch is
// true when every event-side number was found among the extracted
// references.
type MTRNumbersDebug struct {
	Extracted []string `json:"extracted,omitempty"`
	Event     []string `json:"event,omitempty"`
	Missing   []string `json:"missing,omitempty"`
	IsMatch   *bool    `json:"isMatch"`
}

// MTRNumbersOptions configures CompareMTRNumbers.
type MTRNumbersOptions struct {
	NotExtractedReason *ReviewReason
	// OnMissing builds the reason for one event-side number absent from
	// the extracted references.
	OnMissing func(number string) ReviewReason
}

// CompareMTRNumbers checks that every transport-manifest number the
// document declares elsewhere appears among the numbers extracted from
// the certificate text. OCR truncates prefixes and suffixes, so the match
// is substring in either direction. Misses are always review flags.
func CompareMTRNumbers(field *extract.Field[[]string], eventNumbers []string, opts MTRNumbersOptions) ComparisonOutput[MTRNumbersDebug] {
	debug := MTRNumbersDebug{Event: eventNumbers}
	if field != nil {
		debug.Extracted = field.Parsed
		if len(eventNumbers) > 0 {
			for _, number := range eventNumbers {
				if !containsNumber(field.Parsed, number) {
					debug.Missing = append(debug.Missing, number)
				}
			}
			isMatch := len(debug.Missing) == 0
			debug.IsMatch = &isMatch
		}
	}

	validation := confidenceGate(field, len(eventNumbers) > 0, opts.NotExtractedReason, func(extracted []string) []Outcome {
		var outcomes []Outcome
		for _, number := range eventNumbers {
			if !containsNumber(extracted, number) {
				outcomes = append(outcomes, Review(opts.OnMissing(number)))
			}
		}
		return outcomes
	})

	return ComparisonOutput[MTRNumbersDebug]{Debug: debug, Validation: validation}
}

// containsNumber matches bidirectionally by substring to tolerate
// truncation on either side.
func containsNumber(extracted []string, number string) bool {
	n := strings.TrimSpace(number)
	if n == "" {
		return false
	}
	for _, candidate := range extracted {
		c := strings.TrimSpace(candidate)
		if c == "" {
			continue
		}
		if strings.Contains(c, n) || strings.Contains(n, c) {
			return true
		}
	}
	return false
}
