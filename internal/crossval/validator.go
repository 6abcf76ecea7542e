package crossval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourorg/crossval/internal/compare"
	"github.com/yourorg/crossval/internal/event"
	"github.com/yourorg/crossval/internal/extract"
)

// Config carries the comparator tunables threaded through every check.
type Config struct {
	DateToleranceDays          int
	WeightDiscrepancyThreshold float64
	// Location is the IANA timezone event dates are projected into before
	// calendar-day comparisons. Nil means UTC.
	Location                 *time.Location
	MaxConcurrentAttachments int
}

// Validator cross-validates extracted manifest data against canonical
// event data. It is safe for concurrent use; all comparator state lives
// on the stack of one CrossValidate call.
type Validator struct {
	cfg        Config
	extractors map[event.DocumentType]extract.Extractor
	sink       *DebugSink
	logger     *slog.Logger
}

func New(cfg Config, extractors map[event.DocumentType]extract.Extractor, sink *DebugSink, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{cfg: cfg, extractors: extractors, sink: sink, logger: logger}
}

// Result is the orchestrator's contract with its caller. Any fail message
// blocks automatic approval; review reasons allow approval but attach the
// listed findings for a human auditor.
type Result struct {
	FailMessages   []string `json:"failMessages"`
	ReviewReasons  []string `json:"reviewReasons"`
	ReviewRequired bool     `json:"reviewRequired"`
}

type attachmentResult struct {
	outcomes         []compare.Outcome
	extractorReviews []string
}

// CrossValidate extracts every attachment of the manifest event and runs
// the comparator set for the event's document type. Attachments are
// validated independently: an extraction failure on one becomes a review
// flag and never aborts the others. Message order follows attachment
// order, then comparator invocation order within each attachment.
func (v *Validator) CrossValidate(ctx context.Context, evt *event.ManifestEvent) Result {
	extractor, ok := v.extractors[evt.DocumentType]
	if !ok {
		r := reason(codeUnknownDocType, "no extractor configured for document type %q", evt.DocumentType)
		v.logger.Warn("unknown document type", "documentType", evt.DocumentType)
		return Result{
			FailMessages:   []string{},
			ReviewReasons:  []string{formatReason(r)},
			ReviewRequired: true,
		}
	}

	results := make([]attachmentResult, len(evt.Attachments))
	g, ctx := errgroup.WithContext(ctx)
	limit := v.cfg.MaxConcurrentAttachments
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)
	for i, att := range evt.Attachments {
		i, att := i, att
		g.Go(func() error {
			results[i] = v.validateAttachment(ctx, extractor, att, evt)
			return nil
		})
	}
	_ = g.Wait()

	result := Result{FailMessages: []string{}, ReviewReasons: []string{}}
	for _, res := range results {
		result.ReviewReasons = append(result.ReviewReasons, res.extractorReviews...)
		failReasons, reviewReasons := compare.CollectResults(res.outcomes)
		for _, r := range failReasons {
			result.FailMessages = append(result.FailMessages, formatReason(r))
		}
		for _, r := range reviewReasons {
			result.ReviewReasons = append(result.ReviewReasons, formatReason(r))
		}
	}
	result.ReviewRequired = len(result.ReviewReasons) > 0
	return result
}

// validateAttachment never lets an extractor problem escape: errors and
// panics both surface as a single review flag for the attachment.
func (v *Validator) validateAttachment(ctx context.Context, extractor extract.Extractor, att event.Attachment, evt *event.ManifestEvent) (res attachmentResult) {
	defer func() {
		if rec := recover(); rec != nil {
			msg := "Unknown error"
			if err, ok := rec.(error); ok {
				msg = err.Error()
			}
			v.logger.Error("extraction panicked", "attachment", att.Label, "panic", rec)
			res = attachmentResult{outcomes: []compare.Outcome{
				compare.Review(reason(codeExtractionFailed, "extraction failed for attachment %q: %s", att.Label, msg)),
			}}
		}
	}()

	out, err := extractor.Extract(ctx, att.Text)
	if err != nil {
		v.logger.Warn("extraction failed", "attachment", att.Label, "error", err)
		return attachmentResult{outcomes: []compare.Outcome{
			compare.Review(reason(codeExtractionFailed, "extraction failed for attachment %q: %s", att.Label, err.Error())),
		}}
	}

	for _, r := range out.ReviewReasons {
		res.extractorReviews = append(res.extractorReviews, fmt.Sprintf("%s: %s", att.Label, r))
	}
	switch {
	case out.MTR != nil:
		res.outcomes = v.validateMTR(out.MTR, evt)
	case out.CDF != nil:
		res.outcomes = v.validateCDF(out.CDF, evt)
	}
	return res
}

func (v *Validator) validateMTR(data *extract.MTRData, evt *event.ManifestEvent) []compare.Outcome {
	var outcomes []compare.Outcome

	number := compare.CompareStringField(data.ManifestNumber, optional(evt.DocumentNumber), compare.StringFieldOptions{
		NotExtractedReason: reasonPtr(codeDocNumberNotExtracted, "manifest number could not be extracted from the document"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codeDocNumberMismatch, "manifest number %q does not match the recorded %q", ex, ev)
		},
		Routing: compare.RouteFail,
	})
	v.sink.Record("mtr.manifestNumber", number.Debug, "isMatch", number.Debug.IsMatch)
	outcomes = append(outcomes, number.Validation...)

	genEntity, genAddr := withAddress(data.Generator)
	outcomes = append(outcomes, v.compareActor("mtr.generator", genEntity, genAddr, evt.Generator, entityReasons("generator"))...)
	outcomes = append(outcomes, v.compareActor("mtr.hauler", data.Hauler, nil, evt.Hauler, entityReasonsNoAddress("hauler"))...)
	recEntity, recAddr := withAddress(data.Recycler)
	outcomes = append(outcomes, v.compareActor("mtr.recycler", recEntity, recAddr, evt.Recycler, entityReasons("recycler"))...)

	issueDate := compare.CompareDateField(data.IssueDate, evt.IssueDate, compare.DateFieldOptions{
		ToleranceDays:      v.cfg.DateToleranceDays,
		Location:           v.cfg.Location,
		NotExtractedReason: reasonPtr(codeIssueDateNotExtracted, "issue date could not be extracted from the document"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codeIssueDateMismatch, "issue date %s does not match the recorded %s", ex, ev)
		},
	})
	v.sink.Record("mtr.issueDate", issueDate.Debug, "isMatch", issueDate.Debug.IsMatch, "daysDiff", issueDate.Debug.DaysDiff)
	outcomes = append(outcomes, issueDate.Validation...)

	outcomes = append(outcomes, v.compareWaste("mtr", data.WasteEntries, evt)...)

	quantity := compare.CompareWasteQuantity(data.WasteEntries, evt.WeighingValuesKg(), evt.WasteCode(), evt.WasteDescription(), compare.QuantityOptions{
		Threshold:          v.cfg.WeightDiscrepancyThreshold,
		NotExtractedReason: reasonPtr(codeQuantityNotExtracted, "waste quantity could not be extracted from the document"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codeQuantityUnderWeighed, "declared waste quantity %s is below the weighed %s", ex, ev)
		},
	})
	if quantity.Debug != nil {
		v.sink.Record("mtr.wasteQuantity", quantity.Debug,
			"isMatch", quantity.Debug.IsMatch,
			"source", quantity.Debug.Source,
			"discrepancy", quantity.Debug.Discrepancy)
	}
	outcomes = append(outcomes, quantity.Validation...)

	return outcomes
}

func (v *Validator) validateCDF(data *extract.CDFData, evt *event.ManifestEvent) []compare.Outcome {
	var outcomes []compare.Outcome

	number := compare.CompareStringField(data.CertificateNumber, optional(evt.DocumentNumber), compare.StringFieldOptions{
		NotExtractedReason: reasonPtr(codeDocNumberNotExtracted, "certificate number could not be extracted from the document"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codeDocNumberMismatch, "certificate number %q does not match the recorded %q", ex, ev)
		},
		Routing: compare.RouteFail,
	})
	v.sink.Record("cdf.certificateNumber", number.Debug, "isMatch", number.Debug.IsMatch)
	outcomes = append(outcomes, number.Validation...)

	genEntity, genAddr := withAddress(data.Generator)
	outcomes = append(outcomes, v.compareActor("cdf.generator", genEntity, genAddr, evt.Generator, entityReasons("generator"))...)
	recEntity, recAddr := withAddress(data.Recycler)
	outcomes = append(outcomes, v.compareActor("cdf.recycler", recEntity, recAddr, evt.Recycler, entityReasons("recycler"))...)

	issueDate := compare.CompareDateField(data.IssueDate, evt.IssueDate, compare.DateFieldOptions{
		ToleranceDays:      v.cfg.DateToleranceDays,
		Location:           v.cfg.Location,
		NotExtractedReason: reasonPtr(codeIssueDateNotExtracted, "issue date could not be extracted from the document"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codeIssueDateMismatch, "issue date %s does not match the recorded %s", ex, ev)
		},
	})
	v.sink.Record("cdf.issueDate", issueDate.Debug, "isMatch", issueDate.Debug.IsMatch, "daysDiff", issueDate.Debug.DaysDiff)
	outcomes = append(outcomes, issueDate.Validation...)

	period := compare.ComparePeriod(data.ProcessingPeriod, evt.ProcessingDate, compare.PeriodOptions{
		Location:           v.cfg.Location,
		NotExtractedReason: reasonPtr(codePeriodNotExtracted, "processing period could not be extracted from the certificate"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codePeriodOutOfRange, "event date %s falls outside the certified period %q", ev, ex)
		},
	})
	v.sink.Record("cdf.processingPeriod", period.Debug, "isMatch", period.Debug.IsMatch)
	outcomes = append(outcomes, period.Validation...)

	outcomes = append(outcomes, v.compareWaste("cdf", data.WasteEntries, evt)...)

	numbers := compare.CompareMTRNumbers(data.MTRNumbers, evt.MTRNumbers, compare.MTRNumbersOptions{
		NotExtractedReason: reasonPtr(codeMTRNumberMissing, "referenced MTR numbers could not be extracted from the certificate"),
		OnMissing: func(number string) compare.ReviewReason {
			return reason(codeMTRNumberMissing, "MTR number %q is not referenced by the certificate", number)
		},
	})
	v.sink.Record("cdf.mtrNumbers", numbers.Debug, "isMatch", numbers.Debug.IsMatch, "missing", len(numbers.Debug.Missing))
	outcomes = append(outcomes, numbers.Validation...)

	return outcomes
}

func (v *Validator) compareActor(name string, entity *extract.EntityInfo, address *extract.AddressInfo, actor *event.Actor, reasons compare.EntityReasons) []compare.Outcome {
	if actor == nil {
		return nil
	}
	out := compare.CompareEntity(entity, address, actorEventData(actor), reasons)
	v.sink.Record(name, out.Debug,
		"isMatch", out.Debug.IsMatch,
		"nameScore", out.Debug.NameScore,
		"addressScore", out.Debug.AddressScore)
	return out.Validation
}

func (v *Validator) compareWaste(prefix string, entries []extract.WasteTypeEntry, evt *event.ManifestEvent) []compare.Outcome {
	out := compare.CompareWasteTypes(entries, evt.WasteCode(), evt.WasteDescription(), compare.WasteTypeOptions{
		NotExtractedReason: reasonPtr(codeWasteTypeNotExtracted, "waste classification could not be extracted from the document"),
		OnMismatch: func(ev, ex string) compare.ReviewReason {
			return reason(codeWasteTypeMismatch, "no declared waste type matches the recorded classification %q (declared: %s)", ev, ex)
		},
	})
	v.sink.Record(prefix+".wasteType", out.Debug, "isMatch", out.Debug.IsMatch, "entries", len(out.Debug.Entries))
	return out.Validation
}

func actorEventData(a *event.Actor) compare.EntityEventData {
	data := compare.EntityEventData{Names: a.Names()}
	if a.TaxID != "" {
		data.TaxID = &a.TaxID
	}
	if a.Address != nil {
		data.Address = &compare.EventAddress{
			Address: a.Address.Street,
			City:    a.Address.City,
			State:   a.Address.State,
		}
	}
	return data
}

// withAddress splits an extracted entity into its entity and address
// parts. Layouts set the address fields only when the address labels
// matched, so the zero value means no address was extracted.
func withAddress(e *extract.EntityWithAddressInfo) (*extract.EntityInfo, *extract.AddressInfo) {
	if e == nil {
		return nil, nil
	}
	if e.AddressInfo == (extract.AddressInfo{}) {
		return &e.EntityInfo, nil
	}
	return &e.EntityInfo, &e.AddressInfo
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatReason(r compare.ReviewReason) string {
	return fmt.Sprintf("%s: %s", r.Code, r.Description)
}
