package compare

import (
	"time"

	"github.com/yourorg/crossval/internal/extract"
)

// PeriodDebug snapshots a processing-period containment check. Start/End
// stay nil when the period text did not parse; IsMatch stays nil when
// containment could not be evaluated.
type PeriodDebug struct {
	Raw     string     `json:"raw,omitempty"`
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
	Event   *time.Time `json:"event,omitempty"`
	IsMatch *bool      `json:"isMatch"`
}

// PeriodOptions configures ComparePeriod.
type PeriodOptions struct {
	Location           *time.Location
	NotExtractedReason *ReviewReason
	OnMismatch         MismatchFunc
}

// ComparePeriod parses the certificate's free-text processing period and
// checks that the event date falls inside it, bounds inclusive. An
// unparsable period is treated like a missing one; an event date outside
// a high-confidence period is a hard failure.
func ComparePeriod(field *extract.Field[string], eventDate *time.Time, opts PeriodOptions) ComparisonOutput[PeriodDebug] {
	debug := PeriodDebug{Event: eventDate}
	var period Period
	parsed := false
	if field != nil {
		debug.Raw = field.Parsed
		period, parsed = ParsePeriod(field.Parsed)
		if parsed {
			debug.Start = &period.Start
			debug.End = &period.End
			if eventDate != nil {
				isMatch := period.Contains(localCalendarDate(*eventDate, opts.Location))
				debug.IsMatch = &isMatch
			}
		}
	}

	validation := confidenceGate(field, eventDate != nil, opts.NotExtractedReason, func(raw string) []Outcome {
		if !parsed {
			if opts.NotExtractedReason != nil {
				return []Outcome{Review(*opts.NotExtractedReason)}
			}
			return nil
		}
		eventDay := localCalendarDate(*eventDate, opts.Location)
		if period.Contains(eventDay) {
			return nil
		}
		reason := opts.OnMismatch(eventDay.Format(dayMonthYear), raw)
		reason.ComparedFields = append(reason.ComparedFields, ComparedField{
			Field:     "processingPeriod",
			Event:     eventDay.Format(dayMonthYear),
			Extracted: raw,
		})
		return []Outcome{Fail(reason)}
	})

	return ComparisonOutput[PeriodDebug]{Debug: debug, Validation: validation}
}
