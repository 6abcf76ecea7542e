package extract

import "time"

// Confidence is the trust tag a layout parser attaches to every parsed
// field. Anything that is not ConfidenceHigh is treated as unreliable by
// the comparators: mismatches at low confidence are logged but never
// actioned.
type Confidence string

const (
	ConfidenceLow  Confidence = "low"
	ConfidenceHigh Confidence = "high"
)

// Field is a single value pulled out of the raw document text, together
// with the confidence of the extraction and the literal text it matched.
type Field[T any] struct {
	Parsed     T          `json:"parsed"`
	Confidence Confidence `json:"confidence"`
	RawMatch   string     `json:"rawMatch"`
}

// High wraps a parsed value as a high-confidence field.
func High[T any](parsed T, raw string) *Field[T] {
	return &Field[T]{Parsed: parsed, Confidence: ConfidenceHigh, RawMatch: raw}
}

// Low wraps a parsed value as a low-confidence field.
func Low[T any](parsed T, raw string) *Field[T] {
	return &Field[T]{Parsed: parsed, Confidence: ConfidenceLow, RawMatch: raw}
}

// EntityInfo is a named, tax-identified party extracted from a manifest.
type EntityInfo struct {
	Name  Field[string] `json:"name"`
	TaxID Field[string] `json:"taxId"`
}

// AddressInfo carries the address fields of a party. Whether an extracted
// entity "has an address" is a structural question (the layout captured
// these three fields or it did not), not a type tag.
type AddressInfo struct {
	Address Field[string] `json:"address"`
	City    Field[string] `json:"city"`
	State   Field[string] `json:"state"`
}

// EntityWithAddressInfo extends EntityInfo with address fields.
type EntityWithAddressInfo struct {
	EntityInfo
	AddressInfo
}

// WasteTypeEntry is one declared waste line item from a manifest.
type WasteTypeEntry struct {
	Code        string   `json:"code,omitempty"`
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// MTRData is the typed extraction result for a transport manifest.
type MTRData struct {
	ManifestNumber *Field[string]         `json:"manifestNumber,omitempty"`
	IssueDate      *Field[time.Time]      `json:"issueDate,omitempty"`
	Generator      *EntityWithAddressInfo `json:"generator,omitempty"`
	Hauler         *EntityInfo            `json:"hauler,omitempty"`
	Recycler       *EntityWithAddressInfo `json:"recycler,omitempty"`
	WasteEntries   []WasteTypeEntry       `json:"wasteEntries,omitempty"`
}

// CDFData is the typed extraction result for a final-destination
// certificate.
type CDFData struct {
	CertificateNumber *Field[string]         `json:"certificateNumber,omitempty"`
	IssueDate         *Field[time.Time]      `json:"issueDate,omitempty"`
	Generator         *EntityWithAddressInfo `json:"generator,omitempty"`
	Recycler          *EntityWithAddressInfo `json:"recycler,omitempty"`
	ProcessingPeriod  *Field[string]         `json:"processingPeriod,omitempty"`
	MTRNumbers        *Field[[]string]       `json:"mtrNumbers,omitempty"`
	WasteEntries      []WasteTypeEntry       `json:"wasteEntries,omitempty"`
}

// Output is what an extractor hands back for one attachment. Exactly one
// of MTR/CDF is set, matching the document type the extractor was built
// for. ReviewRequired/ReviewReasons flag structural extraction problems
// (unreadable document, no layout matched) as opposed to the field-level
// checks the comparators perform downstream.
type Output struct {
	MTR *MTRData `json:"mtr,omitempty"`
	CDF *CDFData `json:"cdf,omitempty"`

	LayoutUsed     string   `json:"layoutUsed,omitempty"`
	ReviewRequired bool     `json:"reviewRequired"`
	ReviewReasons  []string `json:"reviewReasons,omitempty"`
}
