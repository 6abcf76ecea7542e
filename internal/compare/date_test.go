package compare_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/crossval/internal/compare"
	"github.com/yourorg/crossval/internal/extract"
)

func timePtr(t time.Time) *time.Time { return &t }

func dateField(day int, confidence extract.Confidence) *extract.Field[time.Time] {
	d := time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
	return &extract.Field[time.Time]{Parsed: d, Confidence: confidence, RawMatch: d.Format("02/01/2006")}
}

func TestCompareDateField_ToleranceBoundary(t *testing.T) {
	eventDate := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		field    *extract.Field[time.Time]
		wantKind *compare.OutcomeKind
		wantDiff int
	}{
		{name: "same day passes", field: dateField(10, extract.ConfidenceHigh), wantDiff: 0},
		{name: "one day off is reviewable", field: dateField(11, extract.ConfidenceHigh), wantKind: kindPtr(compare.OutcomeReview), wantDiff: 1},
		{name: "exactly at tolerance is reviewable", field: dateField(13, extract.ConfidenceHigh), wantKind: kindPtr(compare.OutcomeReview), wantDiff: 3},
		{name: "beyond tolerance fails", field: dateField(14, extract.ConfidenceHigh), wantKind: kindPtr(compare.OutcomeFail), wantDiff: 4},
		{name: "low confidence is never actionable", field: dateField(20, extract.ConfidenceLow), wantDiff: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := compare.CompareDateField(tt.field, timePtr(eventDate), compare.DateFieldOptions{
				ToleranceDays: 3,
				OnMismatch:    mismatchReason("DATE"),
			})

			require.NotNil(t, out.Debug.DaysDiff)
			assert.Equal(t, tt.wantDiff, *out.Debug.DaysDiff)
			if tt.wantKind == nil {
				assert.Empty(t, out.Validation)
				return
			}
			require.Len(t, out.Validation, 1)
			assert.Equal(t, *tt.wantKind, out.Validation[0].Kind)
			require.Len(t, out.Validation[0].Reason.ComparedFields, 1)
			assert.Contains(t, out.Validation[0].Reason.ComparedFields[0].Similarity, "days")
		})
	}
}

func kindPtr(k compare.OutcomeKind) *compare.OutcomeKind { return &k }

func TestCompareDateField_TimezoneProjection(t *testing.T) {
	// 2024-05-11 01:00 UTC is still 2024-05-10 in São Paulo.
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	eventDate := time.Date(2024, 5, 11, 1, 0, 0, 0, time.UTC)

	out := compare.CompareDateField(dateField(10, extract.ConfidenceHigh), timePtr(eventDate), compare.DateFieldOptions{
		Location:   saoPaulo,
		OnMismatch: mismatchReason("DATE"),
	})

	require.NotNil(t, out.Debug.DaysDiff)
	assert.Equal(t, 0, *out.Debug.DaysDiff)
	assert.Empty(t, out.Validation)
}

func TestCompareDateField_NotExtracted(t *testing.T) {
	notExtracted := compare.ReviewReason{Code: "DATE-MISSING", Description: "missing"}
	eventDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	out := compare.CompareDateField(nil, timePtr(eventDate), compare.DateFieldOptions{
		NotExtractedReason: &notExtracted,
		OnMismatch:         mismatchReason("DATE"),
	})
	require.Len(t, out.Validation, 1)
	assert.Equal(t, compare.OutcomeReview, out.Validation[0].Kind)

	out = compare.CompareDateField(nil, nil, compare.DateFieldOptions{
		NotExtractedReason: &notExtracted,
		OnMismatch:         mismatchReason("DATE"),
	})
	assert.Empty(t, out.Validation)
	assert.Nil(t, out.Debug.IsMatch)
}
