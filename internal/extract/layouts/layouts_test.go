package layouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/crossval/internal/extract"
	"github.com/yourorg/crossval/internal/extract/layouts"
)

const sampleMTRText = `MANIFESTO DE TRANSPORTE DE RESÍDUOS
MTR Nº 2024000123
Data de Emissão: 15/03/2024

GERADOR
Razão Social: Alpha Industria Ltda
CNPJ: 11.111.111/0001-11
Endereço: Rua das Flores 100
Município: São Paulo
UF: SP

TRANSPORTADOR
Razão Social: Beta Transportes Ltda
CNPJ: 22.222.222/0001-22

DESTINADOR
Razão Social: Gama Reciclagem SA
CNPJ: 33.333.333/0001-33

RESÍDUOS DECLARADOS
04 02 09 - Retalhos de tecido 1.000,00 kg
`

const sampleCDFText = `CERTIFICADO DE DESTINAÇÃO FINAL
CDF Nº 20240042
Data de Emissão: 05/04/2024
Período de processamento: 01/03/2024 até 31/03/2024

GERADOR
Razão Social: Alpha Industria Ltda
CNPJ: 11.111.111/0001-11

DESTINADOR
Razão Social: Gama Reciclagem SA
CNPJ: 33.333.333/0001-33

RESÍDUOS DECLARADOS
04 02 09 - Retalhos de tecido 1.000,00 kg

MTRs atendidos: MTR 2024000123, MTR 2024000456, MTR 2024000123
`

func TestMTRLayoutParse(t *testing.T) {
	out, err := layouts.NewMTRLayout().Parse(context.Background(), sampleMTRText)
	require.NoError(t, err)
	require.NotNil(t, out.MTR)
	assert.False(t, out.ReviewRequired)

	data := out.MTR
	require.NotNil(t, data.ManifestNumber)
	assert.Equal(t, "2024000123", data.ManifestNumber.Parsed)
	assert.Equal(t, extract.ConfidenceHigh, data.ManifestNumber.Confidence)

	require.NotNil(t, data.IssueDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), data.IssueDate.Parsed)
	assert.Equal(t, extract.ConfidenceHigh, data.IssueDate.Confidence)

	require.NotNil(t, data.Generator)
	assert.Equal(t, "Alpha Industria Ltda", data.Generator.Name.Parsed)
	assert.Equal(t, "11.111.111/0001-11", data.Generator.TaxID.Parsed)
	assert.Equal(t, "Rua das Flores 100", data.Generator.Address.Parsed)
	assert.Equal(t, "São Paulo", data.Generator.City.Parsed)
	assert.Equal(t, "SP", data.Generator.State.Parsed)

	require.NotNil(t, data.Hauler)
	assert.Equal(t, "Beta Transportes Ltda", data.Hauler.Name.Parsed)
	require.NotNil(t, data.Recycler)
	assert.Equal(t, "Gama Reciclagem SA", data.Recycler.Name.Parsed)
	assert.Equal(t, "33.333.333/0001-33", data.Recycler.TaxID.Parsed)

	require.Len(t, data.WasteEntries, 1)
	entry := data.WasteEntries[0]
	assert.Equal(t, "040209", entry.Code)
	assert.Equal(t, "Retalhos de tecido", entry.Description)
	require.NotNil(t, entry.Quantity)
	assert.Equal(t, 1000.0, *entry.Quantity)
	assert.Equal(t, "kg", entry.Unit)
}

func TestMTRLayoutUnlabeledDateIsLowConfidence(t *testing.T) {
	text := `MANIFESTO DE TRANSPORTE DE RESÍDUOS
MTR: 2024000123
Emitido em 15/03/2024
`
	out, err := layouts.NewMTRLayout().Parse(context.Background(), text)
	require.NoError(t, err)
	require.NotNil(t, out.MTR.IssueDate)
	assert.Equal(t, extract.ConfidenceLow, out.MTR.IssueDate.Confidence)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), out.MTR.IssueDate.Parsed)
}

func TestMTRLayoutEmptyDocumentFlagsReview(t *testing.T) {
	out, err := layouts.NewMTRLayout().Parse(context.Background(), "MANIFESTO DE TRANSPORTE DE RESÍDUOS\n")
	require.NoError(t, err)
	assert.True(t, out.ReviewRequired)
	require.Len(t, out.ReviewReasons, 1)
	assert.Contains(t, out.ReviewReasons[0], "no fields could be extracted")
}

func TestCDFLayoutParse(t *testing.T) {
	out, err := layouts.NewCDFLayout().Parse(context.Background(), sampleCDFText)
	require.NoError(t, err)
	require.NotNil(t, out.CDF)
	assert.False(t, out.ReviewRequired)

	data := out.CDF
	require.NotNil(t, data.CertificateNumber)
	assert.Equal(t, "20240042", data.CertificateNumber.Parsed)

	require.NotNil(t, data.IssueDate)
	assert.Equal(t, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), data.IssueDate.Parsed)

	require.NotNil(t, data.ProcessingPeriod)
	assert.Equal(t, "01/03/2024 até 31/03/2024", data.ProcessingPeriod.Parsed)
	assert.Equal(t, extract.ConfidenceHigh, data.ProcessingPeriod.Confidence)

	require.NotNil(t, data.Generator)
	assert.Equal(t, "Alpha Industria Ltda", data.Generator.Name.Parsed)
	require.NotNil(t, data.Recycler)
	assert.Equal(t, "Gama Reciclagem SA", data.Recycler.Name.Parsed)

	require.NotNil(t, data.MTRNumbers)
	assert.Equal(t, []string{"2024000123", "2024000456"}, data.MTRNumbers.Parsed)

	require.Len(t, data.WasteEntries, 1)
	assert.Equal(t, "040209", data.WasteEntries[0].Code)
}

func TestLayoutMatchScores(t *testing.T) {
	mtr := layouts.NewMTRLayout()
	cdf := layouts.NewCDFLayout()

	// Each layout requires its own heading, so the CDF's MTR references
	// never pull a certificate into the manifest parser.
	assert.Greater(t, mtr.MatchScore(sampleMTRText), 0.0)
	assert.Zero(t, cdf.MatchScore(sampleMTRText))
	assert.Greater(t, cdf.MatchScore(sampleCDFText), 0.0)
	assert.Zero(t, mtr.MatchScore(sampleCDFText))
}

func TestRegistrySelectsBestLayout(t *testing.T) {
	registry := extract.NewRegistry(layouts.NewMTRLayout(), layouts.NewCDFLayout())

	t.Run("manifest text runs the MTR layout", func(t *testing.T) {
		out, err := registry.Extract(context.Background(), sampleMTRText)
		require.NoError(t, err)
		assert.Equal(t, "mtr-sinir", out.LayoutUsed)
		assert.NotNil(t, out.MTR)
		assert.Nil(t, out.CDF)
	})

	t.Run("certificate text runs the CDF layout", func(t *testing.T) {
		out, err := registry.Extract(context.Background(), sampleCDFText)
		require.NoError(t, err)
		assert.Equal(t, "cdf-standard", out.LayoutUsed)
		assert.NotNil(t, out.CDF)
	})

	t.Run("unrecognized text flags review", func(t *testing.T) {
		out, err := registry.Extract(context.Background(), "nota fiscal eletrônica 42")
		require.NoError(t, err)
		assert.True(t, out.ReviewRequired)
		require.Len(t, out.ReviewReasons, 1)
		assert.Contains(t, out.ReviewReasons[0], "no layout matched")
	})
}
