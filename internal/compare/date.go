package compare

import (
	"fmt"
	"time"

	"github.com/yourorg/crossval/internal/extract"
)

// DateToleranceDays is the default window within which a date mismatch is
// reviewable rather than fatal.
const DateToleranceDays = 3

// DateDebug snapshots a calendar-date comparison. DaysDiff and IsMatch
// stay nil when a day difference could not be computed.
type DateDebug struct {
	Event      *time.Time         `json:"event,omitempty"`
	Extracted  *time.Time         `json:"extracted,omitempty"`
	Confidence extract.Confidence `json:"confidence,omitempty"`
	DaysDiff   *int               `json:"daysDiff,omitempty"`
	IsMatch    *bool              `json:"isMatch"`
}

// DateFieldOptions configures CompareDateField.
type DateFieldOptions struct {
	// ToleranceDays bounds the review window; differences beyond it are
	// hard failures. Zero means DateToleranceDays.
	ToleranceDays int
	// Location is the IANA timezone the event's UTC instant is projected
	// into before diffing calendar days. Nil means UTC.
	Location           *time.Location
	NotExtractedReason *ReviewReason
	OnMismatch         MismatchFunc
}

// CompareDateField diffs an extracted calendar date against an event date
// in whole days. At high confidence a difference within tolerance is a
// review flag and anything beyond it a hard failure.
func CompareDateField(field *extract.Field[time.Time], eventDate *time.Time, opts DateFieldOptions) ComparisonOutput[DateDebug] {
	tolerance := opts.ToleranceDays
	if tolerance == 0 {
		tolerance = DateToleranceDays
	}

	debug := DateDebug{Event: eventDate}
	var daysDiff *int
	if field != nil {
		debug.Extracted = &field.Parsed
		debug.Confidence = field.Confidence
		if eventDate != nil {
			diff := daysBetween(localCalendarDate(*eventDate, opts.Location), field.Parsed)
			daysDiff = &diff
			isMatch := diff == 0
			debug.DaysDiff = daysDiff
			debug.IsMatch = &isMatch
		}
	}

	validation := confidenceGate(field, eventDate != nil, opts.NotExtractedReason, func(extracted time.Time) []Outcome {
		if *daysDiff == 0 {
			return nil
		}
		reason := opts.OnMismatch(
			localCalendarDate(*eventDate, opts.Location).Format(dayMonthYear),
			extracted.Format(dayMonthYear),
		)
		reason.ComparedFields = append(reason.ComparedFields, ComparedField{
			Field:      "date",
			Event:      localCalendarDate(*eventDate, opts.Location).Format(dayMonthYear),
			Extracted:  extracted.Format(dayMonthYear),
			Similarity: fmt.Sprintf("%d days", *daysDiff),
		})
		if *daysDiff > tolerance {
			return []Outcome{Fail(reason)}
		}
		return []Outcome{Review(reason)}
	})

	return ComparisonOutput[DateDebug]{Debug: debug, Validation: validation}
}
