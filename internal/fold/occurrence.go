package fold

import (
	"strings"

	"github.com/dshills/textfold/internal/engine/buffer"
)

// OccurrenceScanner finds every non-overlapping occurrence of a literal
// string, in document order. It is a one-pass, non-restartable scan:
// each search resumes immediately after the previous match's end.
// An empty literal never matches, so the scan cannot loop on
// zero-length spans.
type OccurrenceScanner struct {
	text    string
	literal string
	next    int
}

// NewOccurrenceScanner creates a scanner over the given text.
func NewOccurrenceScanner(text, literal string) *OccurrenceScanner {
	return &OccurrenceScanner{
		text:    text,
		literal: literal,
	}
}

// Next returns the next match span and true, or a zero Span and false
// when the scan is exhausted.
func (s *OccurrenceScanner) Next() (Span, bool) {
	if s.literal == "" || s.next > len(s.text) {
		return Span{}, false
	}

	i := strings.Index(s.text[s.next:], s.literal)
	if i < 0 {
		s.next = len(s.text) + 1
		return Span{}, false
	}

	start := s.next + i
	end := start + len(s.literal)
	s.next = end

	return Span{
		Start: buffer.ByteOffset(start),
		End:   buffer.ByteOffset(end),
	}, true
}
