package layouts

import (
	"context"
	"regexp"

	"github.com/yourorg/crossval/internal/extract"
)

// CDFLayout parses the standard final-destination certificate layout.
type CDFLayout struct{}

func NewCDFLayout() *CDFLayout { return &CDFLayout{} }

func (l *CDFLayout) Name() string { return "cdf-standard" }

var (
	cdfAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?i)certificado\s+de\s+destina[çc][ãa]o\s+final`),
		regexp.MustCompile(`(?i)\bCDF\b`),
		regexp.MustCompile(`(?i)gerador`),
		regexp.MustCompile(`(?i)destinador`),
		regexp.MustCompile(`(?i)per[ií]odo`),
	}

	cdfNumberRe    = regexp.MustCompile(`(?i)CDF\s*(?:n[º°o.]*\s*)?[:#]?\s*([0-9][0-9./-]{3,})`)
	cdfIssueDateRe = regexp.MustCompile(`(?i)data\s+de\s+emiss[ãa]o\s*:?\s*(\d{2}/\d{2}/\d{4})`)
	cdfPeriodRe    = regexp.MustCompile(`(?i)per[ií]odo[^\n]*?:?\s*(\d{2}/\d{2}/\d{4}\s*(?:até|ate|a)\s*\d{2}/\d{2}/\d{4})`)
	cdfMTRRefRe    = regexp.MustCompile(`(?i)\bMTR[\s-]*([0-9][0-9./-]{3,})`)
)

func (l *CDFLayout) MatchScore(text string) float64 {
	if !cdfAnchors[0].MatchString(text) {
		return 0
	}
	return matchScore(text, cdfAnchors)
}

func (l *CDFLayout) Parse(_ context.Context, text string) (*extract.Output, error) {
	data := &extract.CDFData{
		CertificateNumber: stringField(text, cdfNumberRe),
		IssueDate:         dateField(text, cdfIssueDateRe),
		ProcessingPeriod:  stringField(text, cdfPeriodRe),
	}

	generatorText := section(text, generatorStartRe, recyclerStartRe, wasteSectionRe)
	recyclerText := section(text, recyclerStartRe, wasteSectionRe)

	if entity := entityFrom(generatorText, entityNameRe, entityTaxIDRe); entity != nil {
		data.Generator = &extract.EntityWithAddressInfo{EntityInfo: *entity}
		if addr := addressFrom(generatorText, entityStreetRe, entityCityRe, entityStateRe); addr != nil {
			data.Generator.AddressInfo = *addr
		}
	}
	if entity := entityFrom(recyclerText, entityNameRe, entityTaxIDRe); entity != nil {
		data.Recycler = &extract.EntityWithAddressInfo{EntityInfo: *entity}
		if addr := addressFrom(recyclerText, entityStreetRe, entityCityRe, entityStateRe); addr != nil {
			data.Recycler.AddressInfo = *addr
		}
	}

	if refs := mtrReferences(text); len(refs) > 0 {
		data.MTRNumbers = extract.High(refs, "MTR references")
	}
	data.WasteEntries = wasteEntries(text)

	out := &extract.Output{CDF: data}
	if data.CertificateNumber == nil && data.Generator == nil && data.MTRNumbers == nil {
		out.ReviewRequired = true
		out.ReviewReasons = append(out.ReviewReasons, "document recognized as CDF but no fields could be extracted")
	}
	return out, nil
}

func mtrReferences(text string) []string {
	seen := map[string]bool{}
	var refs []string
	for _, m := range cdfMTRRefRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			refs = append(refs, m[1])
		}
	}
	return refs
}
