package compare

import "github.com/yourorg/crossval/internal/extract"

// EntityEventData is the canonical side of an entity comparison. A
// participant may be known under several acceptable names (legal name,
// trade name); any of them matching is enough.
type EntityEventData struct {
	Names   []string
	TaxID   *string
	Address *EventAddress
}

// EventAddress is the canonical address of a participant.
type EventAddress struct {
	Address string
	City    string
	State   string
}

// EntityReasons holds the per-field reason builders for an entity
// comparison. Nil not-extracted reasons disable the corresponding flag.
type EntityReasons struct {
	NameNotExtracted    *ReviewReason
	TaxIDNotExtracted   *ReviewReason
	AddressNotExtracted *ReviewReason
	OnTaxIDMismatch     MismatchFunc
	OnAddressMismatch   MismatchFunc
}

// EntityDebug snapshots an entity comparison. IsMatch mirrors the tax-ID
// result directly; name similarity is informational and never moves it.
type EntityDebug struct {
	NameScore     *float64 `json:"nameScore,omitempty"`
	BestEventName *string  `json:"bestEventName,omitempty"`
	TaxIDMatch    *bool    `json:"taxIdMatch,omitempty"`
	AddressScore  *float64 `json:"addressScore,omitempty"`
	IsMatch       *bool    `json:"isMatch"`
}

// CompareEntity checks an extracted party against the event's record of
// that participant. The tax ID is authoritative: a high-confidence
// mismatch always hard-fails. Names vary too much across legal and trade
// forms to act on, so name similarity is surfaced in debug only.
// Addresses are compared only when the extraction structurally carried
// address fields, and only ever flag for review.
func CompareEntity(entity *extract.EntityInfo, address *extract.AddressInfo, ev EntityEventData, reasons EntityReasons) ComparisonOutput[EntityDebug] {
	var debug EntityDebug
	var validation []Outcome

	if entity == nil {
		if reasons.NameNotExtracted != nil && len(ev.Names) > 0 {
			validation = append(validation, Review(*reasons.NameNotExtracted))
		}
		if reasons.TaxIDNotExtracted != nil && ev.TaxID != nil {
			validation = append(validation, Review(*reasons.TaxIDNotExtracted))
		}
		if reasons.AddressNotExtracted != nil && ev.Address != nil {
			validation = append(validation, Review(*reasons.AddressNotExtracted))
		}
		return ComparisonOutput[EntityDebug]{Debug: debug, Validation: validation}
	}

	// Name: best score across all acceptable event names, informational.
	for _, name := range ev.Names {
		m := IsNameMatch(name, entity.Name.Parsed)
		if debug.NameScore == nil || m.Score > *debug.NameScore {
			score, candidate := m.Score, name
			debug.NameScore = &score
			debug.BestEventName = &candidate
		}
	}

	// The zero field means the layout never extracted a tax ID, which is
	// distinct from a low-confidence extraction: the former flags the
	// not-extracted review, the latter stays silent.
	var taxID *extract.Field[string]
	if entity.TaxID != (extract.Field[string]{}) {
		taxID = &entity.TaxID
	}
	if taxID != nil && ev.TaxID != nil {
		taxIDMatch := NormalizeTaxID(*ev.TaxID) == NormalizeTaxID(taxID.Parsed)
		debug.TaxIDMatch = &taxIDMatch
		debug.IsMatch = &taxIDMatch
	}
	validation = append(validation, confidenceGate(taxID, ev.TaxID != nil, reasons.TaxIDNotExtracted, func(extracted string) []Outcome {
		if NormalizeTaxID(*ev.TaxID) == NormalizeTaxID(extracted) {
			return nil
		}
		reason := reasons.OnTaxIDMismatch(*ev.TaxID, extracted)
		reason.ComparedFields = append(reason.ComparedFields, ComparedField{
			Field:     "taxId",
			Event:     *ev.TaxID,
			Extracted: extracted,
		})
		return []Outcome{Fail(reason)}
	})...)

	validation = append(validation, compareEntityAddress(&debug, address, ev.Address, reasons)...)

	return ComparisonOutput[EntityDebug]{Debug: debug, Validation: validation}
}

func compareEntityAddress(debug *EntityDebug, address *extract.AddressInfo, ev *EventAddress, reasons EntityReasons) []Outcome {
	if address == nil {
		if reasons.AddressNotExtracted != nil && ev != nil {
			return []Outcome{Review(*reasons.AddressNotExtracted)}
		}
		return nil
	}
	if ev == nil {
		return nil
	}

	eventAddr := AddressString(ev.Address, ev.City, ev.State)
	extractedAddr := AddressString(address.Address.Parsed, address.City.Parsed, address.State.Parsed)
	m := IsNameMatch(eventAddr, extractedAddr)
	debug.AddressScore = &m.Score

	if address.Address.Confidence != extract.ConfidenceHigh ||
		address.City.Confidence != extract.ConfidenceHigh ||
		address.State.Confidence != extract.ConfidenceHigh {
		return nil
	}
	if m.IsMatch {
		return nil
	}
	reason := reasons.OnAddressMismatch(eventAddr, extractedAddr)
	reason.ComparedFields = append(reason.ComparedFields, ComparedField{
		Field:      "address",
		Event:      eventAddr,
		Extracted:  extractedAddr,
		Similarity: similarityPercent(m.Score),
	})
	return []Outcome{Review(reason)}
}
