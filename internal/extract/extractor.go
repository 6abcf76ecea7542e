package extract

import (
	"context"
	"fmt"
)

// Extractor turns the OCR text of one attachment into typed fields.
type Extractor interface {
	Extract(ctx context.Context, text string) (*Output, error)
}

// LayoutParser parses one known document layout. MatchScore reports how
// strongly the raw text resembles the layout (0 = not this layout); the
// registry runs the layout with the best positive score.
type LayoutParser interface {
	Name() string
	MatchScore(text string) float64
	Parse(ctx context.Context, text string) (*Output, error)
}

// Registry selects among registered layout parsers by match score.
type Registry struct {
	layouts []LayoutParser
}

func NewRegistry(layouts ...LayoutParser) *Registry {
	return &Registry{layouts: layouts}
}

// Extract picks the best-scoring layout and runs it. When no layout
// recognizes the text at all the output is flagged for review instead of
// returning an error: an unreadable scan is a data problem, not an
// infrastructure one.
func (r *Registry) Extract(ctx context.Context, text string) (*Output, error) {
	var best LayoutParser
	bestScore := 0.0
	for _, layout := range r.layouts {
		if score := layout.MatchScore(text); score > bestScore {
			best, bestScore = layout, score
		}
	}
	if best == nil {
		return &Output{
			ReviewRequired: true,
			ReviewReasons:  []string{"no layout matched the document text"},
		}, nil
	}
	out, err := best.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("layout %q failed: %w", best.Name(), err)
	}
	out.LayoutUsed = best.Name()
	return out, nil
}

// LayoutNames returns the names of all registered layouts.
func (r *Registry) LayoutNames() []string {
	names := make([]string, len(r.layouts))
	for i, l := range r.layouts {
		names[i] = l.Name()
	}
	return names
}
