package compare

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultNameMatchThreshold is the similarity score at or above which two
// names, addresses or waste descriptions are considered the same.
const DefaultNameMatchThreshold = 0.85

// Match is the result of a fuzzy string comparison.
type Match struct {
	IsMatch bool
	Score   float64
}

// IsNameMatch fuzzy-compares two names case- and whitespace-insensitively.
// The same scoring backs entity names, addresses and waste descriptions.
func IsNameMatch(a, b string) Match {
	return isNameMatchAt(a, b, DefaultNameMatchThreshold)
}

func isNameMatchAt(a, b string, threshold float64) Match {
	na := foldName(a)
	nb := foldName(b)
	if na == "" || nb == "" {
		return Match{}
	}
	score := strutil.Similarity(na, nb, metrics.NewJaroWinkler())
	return Match{IsMatch: score >= threshold, Score: score}
}

func foldName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// similarityPercent renders a [0,1] score the way reviewers see it.
func similarityPercent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}
