package crossval

import (
	"fmt"

	"github.com/yourorg/crossval/internal/compare"
)

// Reason codes surfaced to reviewers. The prefix groups the check family;
// codes are stable identifiers, descriptions are for humans.
const (
	codeDocNumberNotExtracted = "CV-DOC-001"
	codeDocNumberMismatch     = "CV-DOC-002"

	codeEntityNameNotExtracted    = "CV-ENT-001"
	codeEntityTaxIDNotExtracted   = "CV-ENT-002"
	codeEntityAddressNotExtracted = "CV-ENT-003"
	codeEntityTaxIDMismatch       = "CV-ENT-004"
	codeEntityAddressMismatch     = "CV-ENT-005"

	codeIssueDateNotExtracted = "CV-DATE-001"
	codeIssueDateMismatch     = "CV-DATE-002"

	codeWasteTypeNotExtracted = "CV-WST-001"
	codeWasteTypeMismatch     = "CV-WST-002"

	codeQuantityNotExtracted = "CV-QTY-001"
	codeQuantityUnderWeighed = "CV-QTY-002"

	codePeriodNotExtracted = "CV-PER-001"
	codePeriodOutOfRange   = "CV-PER-002"

	codeMTRNumberMissing = "CV-REF-001"

	codeExtractionFailed = "CV-EXT-001"
	codeUnknownDocType   = "CV-EXT-002"
)

func reason(code, format string, args ...any) compare.ReviewReason {
	return compare.ReviewReason{Code: code, Description: fmt.Sprintf(format, args...)}
}

func reasonPtr(code, format string, args ...any) *compare.ReviewReason {
	r := reason(code, format, args...)
	return &r
}

// entityReasonsNoAddress is for roles whose layouts never carry address
// fields; an address that cannot be extracted must not flag one.
func entityReasonsNoAddress(role string) compare.EntityReasons {
	r := entityReasons(role)
	r.AddressNotExtracted = nil
	return r
}

func entityReasons(role string) compare.EntityReasons {
	return compare.EntityReasons{
		NameNotExtracted:    reasonPtr(codeEntityNameNotExtracted, "%s name could not be extracted from the document", role),
		TaxIDNotExtracted:   reasonPtr(codeEntityTaxIDNotExtracted, "%s tax ID could not be extracted from the document", role),
		AddressNotExtracted: reasonPtr(codeEntityAddressNotExtracted, "%s address could not be extracted from the document", role),
		OnTaxIDMismatch: func(event, extracted string) compare.ReviewReason {
			return reason(codeEntityTaxIDMismatch, "%s tax ID %q does not match the recorded %q", role, extracted, event)
		},
		OnAddressMismatch: func(event, extracted string) compare.ReviewReason {
			return reason(codeEntityAddressMismatch, "%s address %q differs from the recorded %q", role, extracted, event)
		},
	}
}
