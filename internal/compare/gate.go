package compare

import "github.com/yourorg/crossval/internal/extract"

// confidenceGate implements the routing policy every scalar comparator
// shares:
//
//   - field absent: the not-extracted reason fires only when the event
//     side has a value to compare against (asymmetric on purpose).
//   - field present at low confidence, or event side absent: nothing is
//     actionable; the caller still fills in its debug snapshot.
//   - field present at high confidence with an event value: run the
//     actual comparison.
func confidenceGate[T any](field *extract.Field[T], eventPresent bool, notExtracted *ReviewReason, cmp func(parsed T) []Outcome) []Outcome {
	if field == nil {
		if notExtracted != nil && eventPresent {
			return []Outcome{Review(*notExtracted)}
		}
		return nil
	}
	if field.Confidence != extract.ConfidenceHigh || !eventPresent {
		return nil
	}
	return cmp(field.Parsed)
}
