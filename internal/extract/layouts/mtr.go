package layouts

import (
	"context"
	"regexp"

	"github.com/yourorg/crossval/internal/extract"
)

// MTRLayout parses the standard SINIR transport-manifest print layout.
type MTRLayout struct{}

func NewMTRLayout() *MTRLayout { return &MTRLayout{} }

func (l *MTRLayout) Name() string { return "mtr-sinir" }

var (
	mtrAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?i)manifesto\s+de\s+transporte\s+de\s+res[ií]duos`),
		regexp.MustCompile(`(?i)\bMTR\b`),
		regexp.MustCompile(`(?i)gerador`),
		regexp.MustCompile(`(?i)transportador`),
		regexp.MustCompile(`(?i)destinador`),
	}

	mtrNumberRe    = regexp.MustCompile(`(?i)MTR\s*(?:n[º°o.]*\s*)?[:#]?\s*([0-9][0-9./-]{3,})`)
	mtrIssueDateRe = regexp.MustCompile(`(?i)data\s+de\s+emiss[ãa]o\s*:?\s*(\d{2}/\d{2}/\d{4})`)

	generatorStartRe   = regexp.MustCompile(`(?i)gerador`)
	haulerStartRe      = regexp.MustCompile(`(?i)transportador`)
	recyclerStartRe    = regexp.MustCompile(`(?i)destinador`)
	wasteSectionRe     = regexp.MustCompile(`(?i)res[ií]duos?\s+declarados?`)
	entityNameRe       = regexp.MustCompile(`(?i)raz[ãa]o\s+social\s*:?\s*([^\n]+)`)
	entityTaxIDRe      = regexp.MustCompile(`(?i)CNPJ\s*:?\s*([\d./-]+)`)
	entityStreetRe     = regexp.MustCompile(`(?i)endere[çc]o\s*:?\s*([^\n]+)`)
	entityCityRe       = regexp.MustCompile(`(?i)munic[ií]pio\s*:?\s*([^\n]+)`)
	entityStateRe      = regexp.MustCompile(`(?i)\bUF\s*:?\s*([A-Z]{2})\b`)
)

func (l *MTRLayout) MatchScore(text string) float64 {
	// The CDF layout also mentions MTR numbers; require the manifest
	// heading so a certificate never wins here.
	if !mtrAnchors[0].MatchString(text) {
		return 0
	}
	return matchScore(text, mtrAnchors)
}

func (l *MTRLayout) Parse(_ context.Context, text string) (*extract.Output, error) {
	data := &extract.MTRData{
		ManifestNumber: stringField(text, mtrNumberRe),
		IssueDate:      dateField(text, mtrIssueDateRe),
	}

	generatorText := section(text, generatorStartRe, haulerStartRe, recyclerStartRe, wasteSectionRe)
	haulerText := section(text, haulerStartRe, recyclerStartRe, wasteSectionRe)
	recyclerText := section(text, recyclerStartRe, wasteSectionRe)

	if entity := entityFrom(generatorText, entityNameRe, entityTaxIDRe); entity != nil {
		data.Generator = &extract.EntityWithAddressInfo{EntityInfo: *entity}
		if addr := addressFrom(generatorText, entityStreetRe, entityCityRe, entityStateRe); addr != nil {
			data.Generator.AddressInfo = *addr
		}
	}
	data.Hauler = entityFrom(haulerText, entityNameRe, entityTaxIDRe)
	if entity := entityFrom(recyclerText, entityNameRe, entityTaxIDRe); entity != nil {
		data.Recycler = &extract.EntityWithAddressInfo{EntityInfo: *entity}
		if addr := addressFrom(recyclerText, entityStreetRe, entityCityRe, entityStateRe); addr != nil {
			data.Recycler.AddressInfo = *addr
		}
	}
	data.WasteEntries = wasteEntries(text)

	out := &extract.Output{MTR: data}
	if data.ManifestNumber == nil && data.Generator == nil && len(data.WasteEntries) == 0 {
		out.ReviewRequired = true
		out.ReviewReasons = append(out.ReviewReasons, "document recognized as MTR but no fields could be extracted")
	}
	return out, nil
}
