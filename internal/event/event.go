// Package event holds the read-only snapshot of canonical supply-chain
// events a manifest is validated against. The comparator framework only
// reads these values; nothing here is mutated during validation.
package event

import "time"

// DocumentType names a manifest document type.
type DocumentType string

const (
	// TypeMTR is a Brazilian transport manifest
	// (Manifesto de Transporte de Resíduos).
	TypeMTR DocumentType = "MTR"
	// TypeCDF is a Brazilian final-destination certificate
	// (Certificado de Destinação Final).
	TypeCDF DocumentType = "CDF"
)

// Attachment is one scanned document attached to a manifest event, with
// the OCR text already produced by the external extraction backend.
type Attachment struct {
	Label string
	Text  string
}

// Address is a participant address as recorded on the actor event.
type Address struct {
	Street string
	City   string
	State  string
}

// Actor is one supply-chain participant (generator, hauler, recycler).
// LegalName and TradeName are both acceptable manifest spellings.
type Actor struct {
	LegalName string
	TradeName string
	TaxID     string
	Address   *Address
}

// Names lists the acceptable names for the actor, legal name first.
func (a *Actor) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, 2)
	if a.LegalName != "" {
		names = append(names, a.LegalName)
	}
	if a.TradeName != "" && a.TradeName != a.LegalName {
		names = append(names, a.TradeName)
	}
	return names
}

// WasteClassification is the declared waste code and description from the
// pick-up or drop-off event.
type WasteClassification struct {
	Code        string
	Description string
}

// Weighing is one physical scale reading related to the manifest.
type Weighing struct {
	ValueKg float64
	At      time.Time
}

// ManifestEvent is the canonical snapshot of one document-manifest event
// plus its related events, assembled by the caller from the supply-chain
// document.
type ManifestEvent struct {
	DocumentType   DocumentType
	DocumentNumber string
	IssueDate      *time.Time
	// ProcessingDate is the event date a CDF's processing period must
	// contain.
	ProcessingDate *time.Time

	Generator *Actor
	Hauler    *Actor
	Recycler  *Actor

	Waste     *WasteClassification
	Weighings []Weighing

	// MTRNumbers are the transport-manifest numbers declared elsewhere in
	// the same document, cross-referenced against a CDF's extracted text.
	MTRNumbers []string

	Attachments []Attachment
}

// Attachment returns the attachment with the given label.
func (e *ManifestEvent) Attachment(label string) (Attachment, bool) {
	for _, a := range e.Attachments {
		if a.Label == label {
			return a, true
		}
	}
	return Attachment{}, false
}

// WeighingValuesKg returns the scale readings in recorded order.
func (e *ManifestEvent) WeighingValuesKg() []float64 {
	values := make([]float64, len(e.Weighings))
	for i, w := range e.Weighings {
		values[i] = w.ValueKg
	}
	return values
}

// WasteCode and WasteDescription read the classification attributes,
// tolerating an absent classification.
func (e *ManifestEvent) WasteCode() string {
	if e.Waste == nil {
		return ""
	}
	return e.Waste.Code
}

func (e *ManifestEvent) WasteDescription() string {
	if e.Waste == nil {
		return ""
	}
	return e.Waste.Description
}
