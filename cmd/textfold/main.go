// Package main is the entry point for the textfold viewer, a small
// terminal front end for the fold engine: select text, fold it away
// behind a placeholder glyph, and unfold at point or all at once.
//
// Keys: arrows move, v anchors a selection, f folds the selection,
// F folds all occurrences of the selection, u unfolds at point,
// U unfolds everything, q quits. Enter or Esc on a placeholder
// unfolds it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/textfold/internal/app"
	"github.com/dshills/textfold/internal/config"
	"github.com/dshills/textfold/internal/engine/buffer"
	"github.com/dshills/textfold/internal/input/key"
	"github.com/dshills/textfold/internal/renderer/backend"
	"github.com/dshills/textfold/internal/renderer/core"
)

func main() {
	os.Exit(run())
}

func run() int {
	persist := flag.Bool("persist", false, "persist folds across close/reopen within this run")
	glyph := flag.String("glyph", "…", "placeholder glyph for folded text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: textfold [flags] <file>\n")
		flag.PrintDefaults()
		return 2
	}

	path, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg := config.Default(
		config.WithPersistFolds(*persist),
		config.WithGlyph(*glyph),
	)
	session, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	v := &viewer{
		term:    term,
		session: session,
		doc:     session.Open(path, string(data)),
		anchor:  -1,
	}
	v.loop()
	return 0
}

// viewer is the interactive state of the fold viewer.
type viewer struct {
	term    backend.Backend
	session *app.Session
	doc     *buffer.Document
	cursor  buffer.ByteOffset
	anchor  buffer.ByteOffset // selection anchor, -1 when inactive
	top     int               // first visible line
}

func (v *viewer) loop() {
	for {
		v.render()

		ev := v.term.PollEvent()
		if ev.Type != backend.EventKey {
			continue
		}
		if !v.handleKey(ev.Key) {
			return
		}
	}
}

// handleKey processes one key press. Returns false to quit.
func (v *viewer) handleKey(ev key.Event) bool {
	// Fold-point capture overrides normal handling.
	if v.session.HandleKey(v.doc, v.cursor, ev) {
		return true
	}

	switch {
	case ev.IsRune() && ev.Rune == 'q':
		return false
	case ev.Key == key.KeyLeft:
		if v.cursor > 0 {
			v.cursor--
		}
	case ev.Key == key.KeyRight:
		if v.cursor < v.doc.Len() {
			v.cursor++
		}
	case ev.Key == key.KeyUp, ev.Key == key.KeyDown:
		v.moveLine(ev.Key == key.KeyDown)
	case ev.Key == key.KeyHome:
		p := v.doc.OffsetToPoint(v.cursor)
		v.cursor = v.doc.LineStartOffset(int(p.Line))
	case ev.IsRune() && ev.Rune == 'v':
		if v.anchor < 0 {
			v.anchor = v.cursor
		} else {
			v.anchor = -1
		}
	case ev.IsRune() && ev.Rune == 'f':
		if v.applySelection() {
			_, _ = v.session.FoldRegion(v.doc)
			v.anchor = -1
		}
	case ev.IsRune() && ev.Rune == 'F':
		if v.applySelection() {
			_, _ = v.session.FoldSelectionOccurrences(v.doc)
			v.anchor = -1
		}
	case ev.IsRune() && ev.Rune == 'u':
		v.session.UnfoldAtPoint(v.doc, v.cursor)
	case ev.IsRune() && ev.Rune == 'U':
		v.session.UnfoldAll(v.doc)
	}

	if v.cursor > v.doc.Len() {
		v.cursor = v.doc.Len()
	}
	return true
}

// applySelection pushes the anchored region into the document as the
// active selection. Returns false when no anchor is set.
func (v *viewer) applySelection() bool {
	if v.anchor < 0 {
		return false
	}
	start, end := v.anchor, v.cursor
	if start > end {
		start, end = end, start
	}
	return v.doc.SetSelection(buffer.NewRange(start, end)) == nil
}

// moveLine moves the cursor one line down or up, keeping the column
// where the line allows.
func (v *viewer) moveLine(down bool) {
	p := v.doc.OffsetToPoint(v.cursor)
	line := int(p.Line)
	if down {
		if line+1 >= v.doc.LineCount() {
			return
		}
		line++
	} else {
		if line == 0 {
			return
		}
		line--
	}
	v.cursor = v.doc.PointToOffset(buffer.Point{Line: uint32(line), Column: p.Column})
}

// cell is one display rune with the document span it stands for.
type cell struct {
	r     rune
	style core.Style
	start buffer.ByteOffset
	end   buffer.ByteOffset
}

func (v *viewer) render() {
	v.term.Clear()
	width, height := v.term.Size()
	if height < 2 {
		v.term.Show()
		return
	}

	overlays := v.session.Overlays(v.doc)
	segments := overlays.Segments(v.doc.Text())
	glyphStyle := overlays.Config().Style

	// Flatten segments into styled runes. Visible runes keep their own
	// byte span; every glyph rune stands for the whole hidden span.
	var cells []cell
	for _, seg := range segments {
		if seg.Placeholder {
			for _, r := range seg.Text {
				cells = append(cells, cell{r: r, style: glyphStyle, start: seg.Span.Start, end: seg.Span.End})
			}
			continue
		}
		off := seg.Span.Start
		for _, r := range seg.Text {
			size := buffer.ByteOffset(len(string(r)))
			cells = append(cells, cell{r: r, style: core.DefaultStyle(), start: off, end: off + size})
			off += size
		}
	}

	// Locate the cursor in the collapsed layout and count visible lines.
	lineCount := 1
	curLine, curCol := 0, 0
	line, col := 0, 0
	found := false
	for _, c := range cells {
		if !found && v.cursor >= c.start && v.cursor < c.end {
			curLine, curCol = line, col
			found = true
		}
		if c.r == '\n' {
			lineCount++
			line++
			col = 0
			continue
		}
		col++
	}
	if !found {
		curLine, curCol = line, col
	}
	v.scrollTo(curLine, lineCount, height-1)

	row, col := -v.top, 0
	for _, c := range cells {
		if c.r == '\n' {
			row++
			col = 0
			continue
		}
		if row >= height-1 {
			break
		}
		if row >= 0 && col < width {
			v.term.SetCell(col, row, c.r, c.style)
		}
		col++
	}
	if curLine-v.top >= 0 && curLine-v.top < height-1 && curCol < width {
		v.term.ShowCursor(curCol, curLine-v.top)
	}

	v.renderStatus(width, height-1)
	v.term.Show()
}

// scrollTo keeps the cursor's display line inside the viewport.
func (v *viewer) scrollTo(line, lineCount, viewHeight int) {
	if line < v.top {
		v.top = line
	}
	if line >= v.top+viewHeight {
		v.top = line - viewHeight + 1
	}
	if v.top > lineCount-1 {
		v.top = lineCount - 1
	}
	if v.top < 0 {
		v.top = 0
	}
}

// renderStatus draws the status line.
func (v *viewer) renderStatus(width, row int) {
	reg := v.session.Registry(v.doc)
	p := v.doc.OffsetToPoint(v.cursor)

	mode := ""
	if v.anchor >= 0 {
		mode = " [select]"
	}
	status := fmt.Sprintf(" %d fold(s)  %d:%d%s  v:select f:fold F:fold-all u:unfold U:unfold-all q:quit",
		reg.Count(), p.Line+1, p.Column+1, mode)

	style := core.DefaultStyle().Reverse()
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		v.term.SetCell(col, row, r, style)
		col++
	}
	for ; col < width; col++ {
		v.term.SetCell(col, row, ' ', style)
	}
}
