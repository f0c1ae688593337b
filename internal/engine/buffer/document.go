package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// EditListener is invoked synchronously with a pending edit, before
// the document text changes. Listeners must not call back into
// mutating Document methods.
type EditListener func(pending Edit)

// Document holds position-addressed UTF-8 text together with the state
// the fold subsystem needs from its host: an optional stable identity,
// an active selection, and pre-edit change notifications.
// All methods are thread-safe.
type Document struct {
	mu           sync.RWMutex
	text         string
	path         string
	revisionID   RevisionID
	selection    Range
	hasSelection bool
	listeners    []EditListener
}

// Option configures a Document.
type Option func(*Document)

// WithPath sets the document's stable identity, normally a canonical
// file path. Documents without a path are never persisted.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// NewDocument creates a new empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		revisionID: NewRevisionID(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDocumentFromString creates a document with initial content.
func NewDocumentFromString(s string, opts ...Option) *Document {
	d := NewDocument(opts...)
	d.text = s
	return d
}

// Read Operations

// Text returns the full document content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// TextRange returns text in the given byte range.
func (d *Document) TextRange(start, end ByteOffset) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if start < 0 || start > end || end > ByteOffset(len(d.text)) {
		return "", ErrRangeInvalid
	}
	return d.text[start:end], nil
}

// Len returns the total byte length of the document.
func (d *Document) Len() ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ByteOffset(len(d.text))
}

// IsEmpty returns true if the document is empty.
func (d *Document) IsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text) == 0
}

// Path returns the document's stable identity and whether it has one.
func (d *Document) Path() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path, d.path != ""
}

// RevisionID returns the current revision ID.
func (d *Document) RevisionID() RevisionID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revisionID
}

// Line Operations

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return strings.Count(d.text, "\n") + 1
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines return the empty string.
func (d *Document) LineText(line int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	start, end, ok := d.lineBounds(line)
	if !ok {
		return ""
	}
	return d.text[start:end]
}

// LineStartOffset returns the byte offset of the start of a line.
func (d *Document) LineStartOffset(line int) ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()

	start, _, ok := d.lineBounds(line)
	if !ok {
		return ByteOffset(len(d.text))
	}
	return ByteOffset(start)
}

// lineBounds returns the byte bounds of a line, excluding the newline.
// Caller must hold at least a read lock.
func (d *Document) lineBounds(line int) (start, end int, ok bool) {
	if line < 0 {
		return 0, 0, false
	}
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(d.text[start:], '\n')
		if nl < 0 {
			return 0, 0, false
		}
		start += nl + 1
	}
	end = len(d.text)
	if nl := strings.IndexByte(d.text[start:], '\n'); nl >= 0 {
		end = start + nl
	}
	return start, end, true
}

// OffsetToPoint converts a byte offset to line/column.
// Offsets are clamped to the document bounds.
func (d *Document) OffsetToPoint(offset ByteOffset) Point {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > ByteOffset(len(d.text)) {
		offset = ByteOffset(len(d.text))
	}

	prefix := d.text[:offset]
	line := strings.Count(prefix, "\n")
	col := int(offset)
	if nl := strings.LastIndexByte(prefix, '\n'); nl >= 0 {
		col = int(offset) - nl - 1
	}
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to a byte offset.
// Points past the end of a line clamp to the line end.
func (d *Document) PointToOffset(p Point) ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()

	start, end, ok := d.lineBounds(int(p.Line))
	if !ok {
		return ByteOffset(len(d.text))
	}
	offset := start + int(p.Column)
	if offset > end {
		offset = end
	}
	return ByteOffset(offset)
}

// Selection

// SetSelection sets the active selection.
func (d *Document) SetSelection(r Range) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !r.IsValid() || r.Start < 0 || r.End > ByteOffset(len(d.text)) {
		return ErrRangeInvalid
	}
	d.selection = r
	d.hasSelection = true
	return nil
}

// Selection returns the active selection and whether one exists.
func (d *Document) Selection() (Range, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selection, d.hasSelection
}

// ClearSelection removes the active selection.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hasSelection = false
	d.selection = Range{}
}

// Edit Notifications

// OnEdit registers a listener for pending edits. Listeners run
// synchronously, in registration order, before the text changes.
func (d *Document) OnEdit(fn EditListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// notifyEdit invokes all listeners. Caller must hold the write lock.
func (d *Document) notifyEdit(pending Edit) {
	for _, fn := range d.listeners {
		fn(pending)
	}
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (d *Document) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset < 0 || offset > ByteOffset(len(d.text)) {
		return 0, ErrOffsetOutOfRange
	}

	d.notifyEdit(NewInsert(offset, text))
	d.text = d.text[:offset] + text + d.text[offset:]
	d.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (d *Document) Delete(start, end ByteOffset) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(d.text)) {
		return ErrRangeInvalid
	}

	d.notifyEdit(NewDelete(start, end))
	d.text = d.text[:start] + d.text[end:]
	d.revisionID = NewRevisionID()

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (d *Document) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(d.text)) {
		return 0, ErrRangeInvalid
	}

	d.notifyEdit(NewEdit(Range{Start: start, End: end}, text))
	d.text = d.text[:start] + text + d.text[end:]
	d.revisionID = NewRevisionID()

	return start + ByteOffset(len(text)), nil
}

// ApplyEdit applies a single edit to the document.
func (d *Document) ApplyEdit(edit Edit) (EditResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > ByteOffset(len(d.text)) {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := d.text[edit.Range.Start:edit.Range.End]

	d.notifyEdit(edit)
	d.text = d.text[:edit.Range.Start] + edit.NewText + d.text[edit.Range.End:]
	d.revisionID = NewRevisionID()

	newEnd := edit.Range.Start + ByteOffset(len(edit.NewText))

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    int64(len(edit.NewText)) - int64(edit.Range.Len()),
	}, nil
}
