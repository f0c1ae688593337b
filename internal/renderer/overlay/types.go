// Package overlay provides the rendering artifacts that stand in for
// folded document spans: each hidden span is represented by a single
// placeholder glyph with input capture scoped to it, managed by a
// [Manager] that the fold registry drives through hide/reveal calls.
package overlay

import (
	"github.com/dshills/textfold/internal/engine/buffer"
	"github.com/dshills/textfold/internal/input/key"
	"github.com/dshills/textfold/internal/renderer/core"
)

// FoldPlaceholder is the visual artifact for one hidden span. It owns
// the placeholder glyph and the confirm/cancel input capture for the
// span; both stop existing when the artifact is revealed.
type FoldPlaceholder struct {
	id      string
	span    buffer.Range
	glyph   string
	style   core.Style
	confirm key.Binding
	cancel  key.Binding
}

// ID returns the artifact handle.
func (p *FoldPlaceholder) ID() string {
	return p.id
}

// Span returns the hidden span.
func (p *FoldPlaceholder) Span() buffer.Range {
	return p.span
}

// Glyph returns the placeholder glyph.
func (p *FoldPlaceholder) Glyph() string {
	return p.glyph
}

// Style returns the glyph style.
func (p *FoldPlaceholder) Style() core.Style {
	return p.style
}

// CapturesKey returns true if the event matches the placeholder's
// confirm or cancel chord. Both map to unfolding at the glyph.
func (p *FoldPlaceholder) CapturesKey(ev key.Event) bool {
	return p.confirm.Matches(ev) || p.cancel.Matches(ev)
}

// Config holds the shared appearance and capture chords for fold
// placeholders.
type Config struct {
	// Glyph is the placeholder shown in place of hidden text.
	Glyph string

	// Style is the glyph style.
	Style core.Style

	// Confirm and Cancel are the chords captured at a placeholder;
	// either one unfolds the span under it.
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfig returns the default placeholder configuration.
func DefaultConfig() Config {
	return Config{
		Glyph:   "…",
		Style:   core.NewStyle(core.ColorFromRGB(128, 128, 128)).Reverse(),
		Confirm: key.MustParseBinding("Enter"),
		Cancel:  key.MustParseBinding("Esc"),
	}
}
