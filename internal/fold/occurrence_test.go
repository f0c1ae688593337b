package fold

import "testing"

func collectOccurrences(text, literal string) []Span {
	var spans []Span
	s := NewOccurrenceScanner(text, literal)
	for {
		span, ok := s.Next()
		if !ok {
			return spans
		}
		spans = append(spans, span)
	}
}

func TestOccurrenceScanner(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		literal string
		want    []Span
	}{
		{"no match", "hello", "xyz", nil},
		{"single", "hello", "ell", []Span{{1, 4}}},
		{"multiple", "abcabcabc", "abc", []Span{{0, 3}, {3, 6}, {6, 9}}},
		{"non-overlapping", "aaaa", "aa", []Span{{0, 2}, {2, 4}}},
		{"overlap candidates skipped", "aaa", "aa", []Span{{0, 2}}},
		{"whole text", "abc", "abc", []Span{{0, 3}}},
		{"empty text", "", "a", nil},
		{"literal longer than text", "ab", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectOccurrences(tt.text, tt.literal)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d spans, got %d (%v)", len(tt.want), len(got), got)
			}
			for i, span := range got {
				if span != tt.want[i] {
					t.Errorf("span %d: expected %v, got %v", i, tt.want[i], span)
				}
			}
		})
	}
}

func TestOccurrenceScannerEmptyLiteral(t *testing.T) {
	// Must terminate immediately rather than loop on zero-length spans.
	s := NewOccurrenceScanner("some text", "")
	if _, ok := s.Next(); ok {
		t.Error("empty literal should yield no matches")
	}
}

func TestOccurrenceScannerStrictlyIncreasing(t *testing.T) {
	spans := collectOccurrences("xx xx xx xx", "xx")
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			t.Errorf("matches overlap: %v then %v", spans[i-1], spans[i])
		}
		if spans[i].Start <= spans[i-1].Start {
			t.Errorf("starts not strictly increasing: %v then %v", spans[i-1], spans[i])
		}
	}
}

func TestOccurrenceScannerExhausted(t *testing.T) {
	s := NewOccurrenceScanner("abc", "abc")
	if _, ok := s.Next(); !ok {
		t.Fatal("expected one match")
	}
	if _, ok := s.Next(); ok {
		t.Error("scanner should stay exhausted")
	}
	if _, ok := s.Next(); ok {
		t.Error("scanner should stay exhausted")
	}
}
