// Package resolver translates UTF-16 span positions into code point bounds
// and orders the spans for right-to-left splicing.
package resolver

import (
	"cmp"
	"iter"
	"slices"

	"github.com/riverfjs/tgmarkup/internal/types"
	"github.com/riverfjs/tgmarkup/internal/util"
)

// Plan holds resolved spans sorted ascending by start. It is meant to be
// consumed with Backward so that every splice happens to the right of the
// spans still waiting.
type Plan struct {
	spans []types.ResolvedSpan
}

// Resolve computes code point bounds for every span against the unmodified
// text and sorts them by start. Spans that share a start keep their input
// order; the earlier one ends up wrapping the later one.
func Resolve(runes []rune, spans []types.Span) Plan {
	resolved := make([]types.ResolvedSpan, 0, len(spans))
	for _, s := range spans {
		start := util.CodepointIndex(runes, s.StartUTF16)
		end := util.CodepointIndex(runes, s.StartUTF16+s.LengthUTF16)
		if end < start {
			end = start
		}
		resolved = append(resolved, types.ResolvedSpan{
			Start:    start,
			End:      end,
			Kind:     s.Kind,
			URL:      s.URL,
			Language: s.Language,
		})
	}
	slices.SortStableFunc(resolved, func(a, b types.ResolvedSpan) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return Plan{spans: resolved}
}

// Len returns the number of spans in the plan.
func (p Plan) Len() int {
	return len(p.spans)
}

// Ascending returns a copy of the spans in start order.
func (p Plan) Ascending() []types.ResolvedSpan {
	return slices.Clone(p.spans)
}

// Backward yields spans from the highest start to the lowest.
func (p Plan) Backward() iter.Seq[types.ResolvedSpan] {
	return func(yield func(types.ResolvedSpan) bool) {
		for i := len(p.spans) - 1; i >= 0; i-- {
			if !yield(p.spans[i]) {
				return
			}
		}
	}
}

// Crossing is a pair of spans that overlap without nesting.
// Outer is the one spliced last.
type Crossing struct {
	Outer types.ResolvedSpan
	Inner types.ResolvedSpan
}

// crosses reports whether b, spliced before a, leaves a with half of b's tags.
// b must not start before a.
func crosses(a, b types.ResolvedSpan) bool {
	return b.Start < a.End && !a.Contains(b)
}

// Crossings lists every pair in p that would render as interleaved tags.
func Crossings(p Plan) []Crossing {
	var out []Crossing
	for i := range p.spans {
		for j := i + 1; j < len(p.spans); j++ {
			if crosses(p.spans[i], p.spans[j]) {
				out = append(out, Crossing{Outer: p.spans[i], Inner: p.spans[j]})
			}
		}
	}
	return out
}

func firstCrossing(spans []types.ResolvedSpan) (int, int, bool) {
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if crosses(spans[i], spans[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// sortNested orders by start, longest first among equal starts.
func sortNested(spans []types.ResolvedSpan) {
	slices.SortStableFunc(spans, func(a, b types.ResolvedSpan) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(b.End, a.End)
	})
}

// SplitCrossing rewrites p into a properly nested plan. Same-start spans are
// reordered longest first, and a span that runs past the end of an earlier
// span is cut at that end into two fragments of the same kind.
func SplitCrossing(p Plan) Plan {
	spans := slices.Clone(p.spans)
	sortNested(spans)
	for {
		i, j, ok := firstCrossing(spans)
		if !ok {
			return Plan{spans: spans}
		}
		cut := spans[i].End
		tail := spans[j]
		tail.Start = cut
		spans[j].End = cut
		spans = append(spans, tail)
		sortNested(spans)
	}
}
