package fold

import (
	"fmt"

	"github.com/dshills/textfold/internal/engine/buffer"
)

// Span is a persistable boundary pair for one folded range.
type Span struct {
	Start buffer.ByteOffset
	End   buffer.ByteOffset
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Range is one folded span of document text. It is created live by the
// registry and transitions to dead exactly once: on an intersecting
// edit, an unfold request, or document unload. A dead Range is inert;
// destroying it again is a no-op.
type Range struct {
	span     buffer.Range
	live     bool
	artifact string // rendering artifact handle, empty once revealed
}

// Start returns the inclusive start offset of the folded span.
func (r *Range) Start() buffer.ByteOffset {
	return r.span.Start
}

// End returns the exclusive end offset of the folded span.
func (r *Range) End() buffer.ByteOffset {
	return r.span.End
}

// Span returns the folded span as a boundary pair.
func (r *Range) Span() Span {
	return Span{Start: r.span.Start, End: r.span.End}
}

// Live returns true if the range still hides text.
func (r *Range) Live() bool {
	return r.live
}

// Covers returns true if the position lies within the folded span,
// counting both boundaries. The placeholder glyph is a single
// addressable point, so touching an edge counts as covering.
func (r *Range) Covers(pos buffer.ByteOffset) bool {
	return r.span.Covers(pos)
}

// String returns a human-readable representation of the range.
func (r *Range) String() string {
	state := "dead"
	if r.live {
		state = "live"
	}
	return fmt.Sprintf("fold%s %s", r.span.String(), state)
}
