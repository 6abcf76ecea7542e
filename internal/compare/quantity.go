package compare

import (
	"fmt"
	"math"

	"github.com/yourorg/crossval/internal/extract"
)

// WeightDiscrepancyThreshold is the default fraction by which the declared
// quantity may fall short of the scale reading before a review is raised.
const WeightDiscrepancyThreshold = 0.10

// Quantity reconciliation sources, kept in debug for audit traceability.
const (
	SourceMatchedEntry = "matched-entry"
	SourceTotalWeight  = "total-weight"
)

// QuantityDebug snapshots a waste-quantity reconciliation.
type QuantityDebug struct {
	Source      string  `json:"source"`
	ExtractedKg float64 `json:"extractedKg"`
	WeighedKg   float64 `json:"weighedKg"`
	Discrepancy float64 `json:"discrepancy"`
	IsMatch     bool    `json:"isMatch"`
}

// QuantityOptions configures CompareWasteQuantity.
type QuantityOptions struct {
	// Threshold overrides WeightDiscrepancyThreshold when positive.
	Threshold          float64
	NotExtractedReason *ReviewReason
	OnMismatch         MismatchFunc
}

// CompareWasteQuantity reconciles the declared waste quantity against the
// first positive weighing. It prefers the quantity on the line item whose
// type matches the event classification and falls back to the total of
// all convertible line quantities. Declaring at least the weighed amount
// is fine; under-reporting beyond the threshold is reviewable, never
// fatal.
func CompareWasteQuantity(entries []extract.WasteTypeEntry, weighingsKg []float64, eventCode, eventDescription string, opts QuantityOptions) ComparisonOutput[*QuantityDebug] {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = WeightDiscrepancyThreshold
	}

	weighed, ok := firstPositive(weighingsKg)
	if !ok {
		return ComparisonOutput[*QuantityDebug]{}
	}

	extracted, source, usable := declaredQuantityKg(entries, eventCode, eventDescription)
	if !usable {
		var validation []Outcome
		if opts.NotExtractedReason != nil {
			validation = append(validation, Review(*opts.NotExtractedReason))
		}
		return ComparisonOutput[*QuantityDebug]{Validation: validation}
	}

	discrepancy := math.Abs(extracted-weighed) / weighed
	isMatch := extracted >= weighed || discrepancy <= threshold
	debug := &QuantityDebug{
		Source:      source,
		ExtractedKg: extracted,
		WeighedKg:   weighed,
		Discrepancy: discrepancy,
		IsMatch:     isMatch,
	}

	var validation []Outcome
	if !isMatch {
		eventStr := fmt.Sprintf("%g kg", weighed)
		extractedStr := fmt.Sprintf("%g kg", extracted)
		reason := opts.OnMismatch(eventStr, extractedStr)
		reason.ComparedFields = append(reason.ComparedFields, ComparedField{
			Field:      "wasteQuantity",
			Event:      eventStr,
			Extracted:  extractedStr,
			Similarity: similarityPercent(discrepancy),
		})
		validation = append(validation, Review(reason))
	}

	return ComparisonOutput[*QuantityDebug]{Debug: debug, Validation: validation}
}

// declaredQuantityKg resolves the declared quantity in kilograms, first
// from the type-matched entry, then from the total across all entries.
// Entries with unconvertible units (volumetric ones like m³) are skipped.
func declaredQuantityKg(entries []extract.WasteTypeEntry, eventCode, eventDescription string) (float64, string, bool) {
	for _, entry := range entries {
		matched, _ := MatchWasteTypeEntry(entry, eventCode, eventDescription)
		if !matched || entry.Quantity == nil {
			continue
		}
		if kg, ok := NormalizeQuantityToKg(*entry.Quantity, entry.Unit); ok {
			return kg, SourceMatchedEntry, true
		}
	}

	total := 0.0
	usable := false
	for _, entry := range entries {
		if entry.Quantity == nil {
			continue
		}
		if kg, ok := NormalizeQuantityToKg(*entry.Quantity, entry.Unit); ok {
			total += kg
			usable = true
		}
	}
	return total, SourceTotalWeight, usable
}

func firstPositive(values []float64) (float64, bool) {
	for _, v := range values {
		if v > 0 {
			return v, true
		}
	}
	return 0, false
}
