package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/crossval/internal/compare"
)

func TestCollectResults(t *testing.T) {
	outcomes := []compare.Outcome{
		compare.Fail(compare.ReviewReason{Code: "A"}),
		compare.Review(compare.ReviewReason{Code: "B"}),
		compare.Fail(compare.ReviewReason{Code: "C"}),
		compare.Review(compare.ReviewReason{Code: "D"}),
	}

	fails, reviews := compare.CollectResults(outcomes)

	require.Len(t, fails, 2)
	assert.Equal(t, "A", fails[0].Code)
	assert.Equal(t, "C", fails[1].Code)
	require.Len(t, reviews, 2)
	assert.Equal(t, "B", reviews[0].Code)
	assert.Equal(t, "D", reviews[1].Code)
}

func TestCollectResultsEmpty(t *testing.T) {
	fails, reviews := compare.CollectResults(nil)
	assert.Empty(t, fails)
	assert.Empty(t, reviews)
}
