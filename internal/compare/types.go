package compare

// ComparedField records one event-vs-extracted value pair inside a
// ReviewReason, for the human auditor.
type ComparedField struct {
	Field      string `json:"field"`
	Event      string `json:"event"`
	Extracted  string `json:"extracted"`
	Similarity string `json:"similarity,omitempty"`
}

// ReviewReason is the audit-facing artifact for a discrepancy. Every
// mismatch the framework acts on renders exactly one.
type ReviewReason struct {
	Code           string          `json:"code"`
	Description    string          `json:"description"`
	ComparedFields []ComparedField `json:"comparedFields,omitempty"`
}

// OutcomeKind tags the severity of a single comparator finding.
type OutcomeKind int

const (
	// OutcomeFail blocks automatic approval of the document.
	OutcomeFail OutcomeKind = iota
	// OutcomeReview allows approval but attaches the reason for a human
	// auditor.
	OutcomeReview
)

// Outcome is one comparator finding. A comparator call returns zero or
// more of these; it never returns both severities for the same sub-check.
type Outcome struct {
	Kind   OutcomeKind
	Reason ReviewReason
}

func Fail(r ReviewReason) Outcome   { return Outcome{Kind: OutcomeFail, Reason: r} }
func Review(r ReviewReason) Outcome { return Outcome{Kind: OutcomeReview, Reason: r} }

// Routing selects the severity a comparator assigns to a plain mismatch.
// Document-level attribute checks route to fail; most cross-validation
// checks route to review. The choice is per call site.
type Routing string

const (
	RouteFail   Routing = "fail"
	RouteReview Routing = "review"
)

func routed(r Routing, reason ReviewReason) Outcome {
	if r == RouteFail {
		return Fail(reason)
	}
	return Review(reason)
}

// ComparisonOutput pairs the always-produced debug snapshot of a
// comparator call with its zero-or-more validation findings.
type ComparisonOutput[TDebug any] struct {
	Debug      TDebug
	Validation []Outcome
}

// MismatchFunc builds the reason reported when event and extracted values
// disagree.
type MismatchFunc func(event, extracted string) ReviewReason
