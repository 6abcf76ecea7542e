package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/crossval/internal/compare"
	"github.com/yourorg/crossval/internal/extract"
)

func mtrOpts() compare.MTRNumbersOptions {
	return compare.MTRNumbersOptions{
		NotExtractedReason: &compare.ReviewReason{Code: "REF-MISSING", Description: "references missing"},
		OnMissing: func(number string) compare.ReviewReason {
			return compare.ReviewReason{Code: "REF-ABSENT", Description: number}
		},
	}
}

func refs(numbers ...string) *extract.Field[[]string] {
	return extract.High(numbers, "MTR references")
}

func TestCompareMTRNumbers(t *testing.T) {
	t.Run("all event numbers present", func(t *testing.T) {
		out := compare.CompareMTRNumbers(refs("2024000123", "2024000456"), []string{"2024000123", "2024000456"}, mtrOpts())
		assert.Empty(t, out.Validation)
		require.NotNil(t, out.Debug.IsMatch)
		assert.True(t, *out.Debug.IsMatch)
		assert.Empty(t, out.Debug.Missing)
	})

	t.Run("extracted number truncated by OCR still matches", func(t *testing.T) {
		out := compare.CompareMTRNumbers(refs("24000123"), []string{"2024000123"}, mtrOpts())
		assert.Empty(t, out.Validation)
	})

	t.Run("extracted number longer than event number still matches", func(t *testing.T) {
		out := compare.CompareMTRNumbers(refs("MTR-2024000123"), []string{"2024000123"}, mtrOpts())
		assert.Empty(t, out.Validation)
	})

	t.Run("each missing number flags its own review", func(t *testing.T) {
		out := compare.CompareMTRNumbers(refs("2024000123"), []string{"2024000123", "2024000456", "2024000789"}, mtrOpts())
		require.Len(t, out.Validation, 2)
		assert.Equal(t, compare.OutcomeReview, out.Validation[0].Kind)
		assert.Equal(t, "2024000456", out.Validation[0].Reason.Description)
		assert.Equal(t, "2024000789", out.Validation[1].Reason.Description)
		assert.Equal(t, []string{"2024000456", "2024000789"}, out.Debug.Missing)
	})

	t.Run("blank extracted candidates never match", func(t *testing.T) {
		out := compare.CompareMTRNumbers(refs("", "  "), []string{"2024000123"}, mtrOpts())
		require.Len(t, out.Validation, 1)
		assert.Equal(t, "REF-ABSENT", out.Validation[0].Reason.Code)
	})

	t.Run("missing field with event numbers reviews", func(t *testing.T) {
		out := compare.CompareMTRNumbers(nil, []string{"2024000123"}, mtrOpts())
		require.Len(t, out.Validation, 1)
		assert.Equal(t, "REF-MISSING", out.Validation[0].Reason.Code)
	})

	t.Run("no event numbers produces nothing", func(t *testing.T) {
		out := compare.CompareMTRNumbers(refs("2024000123"), nil, mtrOpts())
		assert.Empty(t, out.Validation)
		assert.Nil(t, out.Debug.IsMatch)
	})

	t.Run("low confidence produces nothing", func(t *testing.T) {
		out := compare.CompareMTRNumbers(extract.Low([]string{"999"}, "refs"), []string{"2024000123"}, mtrOpts())
		assert.Empty(t, out.Validation)
	})
}
