package compare

import (
	"strings"

	"github.com/yourorg/crossval/internal/extract"
)

// WasteEntryDebug records how one declared waste line item fared against
// the event's classification.
type WasteEntryDebug struct {
	Code             string   `json:"code,omitempty"`
	Description      string   `json:"description,omitempty"`
	IsMatch          bool     `json:"isMatch"`
	DescriptionScore *float64 `json:"descriptionScore,omitempty"`
}

// WasteTypeDebug snapshots a waste-type comparison. IsMatch is true when
// any declared entry matched: one correct line item is enough.
type WasteTypeDebug struct {
	EventCode        string            `json:"eventCode,omitempty"`
	EventDescription string            `json:"eventDescription,omitempty"`
	Entries          []WasteEntryDebug `json:"entries,omitempty"`
	IsMatch          bool              `json:"isMatch"`
}

// WasteTypeOptions configures CompareWasteTypes.
type WasteTypeOptions struct {
	NotExtractedReason *ReviewReason
	OnMismatch         MismatchFunc
}

// MatchWasteTypeEntry decides whether one declared entry names the same
// waste as the event classification. Codes are authoritative when both
// sides have one; otherwise the descriptions are fuzzy-matched. The
// returned score is the description similarity when one was computed.
func MatchWasteTypeEntry(entry extract.WasteTypeEntry, eventCode, eventDescription string) (bool, *float64) {
	if eventCode == "" && eventDescription == "" {
		return false, nil
	}
	if entry.Code != "" && eventCode != "" {
		if NormalizeWasteCode(entry.Code) != NormalizeWasteCode(eventCode) {
			return false, nil
		}
		m := IsNameMatch(eventDescription, entry.Description)
		return true, &m.Score
	}
	if eventDescription == "" {
		return false, nil
	}
	m := IsNameMatch(eventDescription, entry.Description)
	return m.IsMatch, &m.Score
}

// CompareWasteTypes checks the declared waste line items against the
// classification the pick-up or drop-off event recorded. Taxonomy
// disagreements are always reviewable, never fatal.
func CompareWasteTypes(entries []extract.WasteTypeEntry, eventCode, eventDescription string, opts WasteTypeOptions) ComparisonOutput[WasteTypeDebug] {
	debug := WasteTypeDebug{EventCode: eventCode, EventDescription: eventDescription}

	eventHasClassification := eventCode != "" || eventDescription != ""
	meaningful := false
	for _, entry := range entries {
		matched, score := MatchWasteTypeEntry(entry, eventCode, eventDescription)
		debug.Entries = append(debug.Entries, WasteEntryDebug{
			Code:             entry.Code,
			Description:      entry.Description,
			IsMatch:          matched,
			DescriptionScore: score,
		})
		debug.IsMatch = debug.IsMatch || matched
		if entry.Code != "" || strings.TrimSpace(entry.Description) != "" {
			meaningful = true
		}
	}

	var validation []Outcome
	switch {
	case !eventHasClassification:
	case len(entries) == 0 || !meaningful:
		if opts.NotExtractedReason != nil {
			validation = append(validation, Review(*opts.NotExtractedReason))
		}
	case !debug.IsMatch:
		reason := opts.OnMismatch(eventClassification(eventCode, eventDescription), wasteEntriesSummary(entries))
		reason.ComparedFields = append(reason.ComparedFields, ComparedField{
			Field:     "wasteType",
			Event:     eventClassification(eventCode, eventDescription),
			Extracted: wasteEntriesSummary(entries),
		})
		validation = append(validation, Review(reason))
	}

	return ComparisonOutput[WasteTypeDebug]{Debug: debug, Validation: validation}
}

func eventClassification(code, description string) string {
	switch {
	case code != "" && description != "":
		return code + " " + description
	case code != "":
		return code
	default:
		return description
	}
}

func wasteEntriesSummary(entries []extract.WasteTypeEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := eventClassification(e.Code, e.Description); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}
