// Package backend provides the terminal backend for the fold viewer.
// It wraps tcell behind a small interface so the viewer and tests can
// share the same event loop.
package backend

import (
	"github.com/dshills/textfold/internal/input/key"
	"github.com/dshills/textfold/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event payload.
	Key key.Event

	// Resize event payload.
	Width, Height int
}

// Backend is the terminal surface the viewer draws on.
type Backend interface {
	// Init prepares the terminal. Shutdown must be called afterwards.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the current width and height in cells.
	Size() (int, int)

	// Clear erases the screen.
	Clear()

	// SetCell places a rune with a style at the given cell.
	SetCell(x, y int, r rune, style core.Style)

	// ShowCursor places the terminal cursor.
	ShowCursor(x, y int)

	// Show flushes pending drawing to the terminal.
	Show()

	// PollEvent blocks until the next event.
	PollEvent() Event
}
