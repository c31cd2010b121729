package tgmarkup

import (
	"errors"
	"fmt"

	"github.com/riverfjs/tgmarkup/internal/types"
)

var (
	// ErrCrossingSpans: 两个实体部分重叠但不嵌套，无法生成合法标签。
	ErrCrossingSpans = errors.New("crossing spans")
	// ErrMissingLinkURL: text_link 实体没有 URL。
	ErrMissingLinkURL = errors.New("link without url")
)

// CrossingError reports the first pair of crossing spans, in code points.
type CrossingError struct {
	Outer types.ResolvedSpan
	Inner types.ResolvedSpan
}

func (e *CrossingError) Error() string {
	return fmt.Sprintf("%v: %s [%d,%d) crosses %s [%d,%d)", ErrCrossingSpans,
		e.Inner.Kind, e.Inner.Start, e.Inner.End,
		e.Outer.Kind, e.Outer.Start, e.Outer.End)
}

func (e *CrossingError) Unwrap() error {
	return ErrCrossingSpans
}
