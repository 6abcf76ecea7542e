package compare

import "github.com/yourorg/crossval/internal/extract"

// FieldDebug is the always-produced snapshot of a scalar string
// comparison. IsMatch stays nil unless both sides had a value.
type FieldDebug struct {
	Event      *string            `json:"event,omitempty"`
	Extracted  *string            `json:"extracted,omitempty"`
	Confidence extract.Confidence `json:"confidence,omitempty"`
	IsMatch    *bool              `json:"isMatch"`
}

// StringFieldOptions configures CompareStringField.
type StringFieldOptions struct {
	// Compare overrides strict equality.
	Compare func(event, extracted string) bool
	// NotExtractedReason, when set, is emitted as a review flag if the
	// field is absent while the event side has a value.
	NotExtractedReason *ReviewReason
	OnMismatch         MismatchFunc
	Routing            Routing
}

// CompareStringField compares one extracted string against its canonical
// event value. Mismatches are actionable only at high confidence; the
// resulting reason routes to fail or review per the call site.
func CompareStringField(field *extract.Field[string], eventValue *string, opts StringFieldOptions) ComparisonOutput[FieldDebug] {
	equal := opts.Compare
	if equal == nil {
		equal = func(event, extracted string) bool { return event == extracted }
	}

	debug := FieldDebug{Event: eventValue}
	if field != nil {
		debug.Extracted = &field.Parsed
		debug.Confidence = field.Confidence
		if eventValue != nil {
			isMatch := equal(*eventValue, field.Parsed)
			debug.IsMatch = &isMatch
		}
	}

	validation := confidenceGate(field, eventValue != nil, opts.NotExtractedReason, func(extracted string) []Outcome {
		if equal(*eventValue, extracted) {
			return nil
		}
		reason := opts.OnMismatch(*eventValue, extracted)
		reason.ComparedFields = append(reason.ComparedFields, ComparedField{
			Field:     "value",
			Event:     *eventValue,
			Extracted: extracted,
		})
		return []Outcome{routed(opts.Routing, reason)}
	})

	return ComparisonOutput[FieldDebug]{Debug: debug, Validation: validation}
}
