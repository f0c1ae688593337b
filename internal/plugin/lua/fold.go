// Package lua exposes the fold operations to user init scripts through
// a gopher-lua module.
package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textfold/internal/app"
	"github.com/dshills/textfold/internal/engine/buffer"
)

// Context carries the session and the document a script operates on.
type Context struct {
	Session *app.Session
	Doc     *buffer.Document
}

// FoldModule implements the fold API module. All positions crossing
// the Lua boundary are byte offsets, matching the engine.
type FoldModule struct {
	ctx *Context
}

// NewFoldModule creates a new fold module.
func NewFoldModule(ctx *Context) *FoldModule {
	return &FoldModule{ctx: ctx}
}

// Name returns the module name.
func (m *FoldModule) Name() string {
	return "fold"
}

// Register registers the module into the Lua state as the global
// "fold" table.
func (m *FoldModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "region", L.NewFunction(m.region))
	L.SetField(mod, "occurrences", L.NewFunction(m.occurrences))
	L.SetField(mod, "unfold_all", L.NewFunction(m.unfoldAll))
	L.SetField(mod, "unfold_at", L.NewFunction(m.unfoldAt))
	L.SetField(mod, "count", L.NewFunction(m.count))
	L.SetField(mod, "spans", L.NewFunction(m.spans))

	L.SetGlobal("fold", mod)
	return nil
}

// region() -> bool
// Folds the active selection. Returns false when there is no selection
// to fold.
func (m *FoldModule) region(L *lua.LState) int {
	r, err := m.ctx.Session.FoldRegion(m.ctx.Doc)
	if err != nil {
		L.RaiseError("fold.region: %v", err)
		return 0
	}
	L.Push(lua.LBool(r != nil))
	return 1
}

// occurrences(literal) -> int
// Folds every occurrence of the literal and returns how many were
// folded.
func (m *FoldModule) occurrences(L *lua.LState) int {
	literal := L.CheckString(1)

	reg := m.ctx.Session.Registry(m.ctx.Doc)
	if reg == nil {
		L.Push(lua.LNumber(0))
		return 1
	}

	created, err := reg.FoldAllOccurrences(literal)
	if err != nil {
		L.RaiseError("fold.occurrences: %v", err)
		return 0
	}
	L.Push(lua.LNumber(len(created)))
	return 1
}

// unfold_all()
// Removes every fold in the document.
func (m *FoldModule) unfoldAll(L *lua.LState) int {
	m.ctx.Session.UnfoldAll(m.ctx.Doc)
	return 0
}

// unfold_at(pos) -> int
// Removes every fold covering the byte offset and returns how many
// were removed.
func (m *FoldModule) unfoldAt(L *lua.LState) int {
	pos := L.CheckInt64(1)
	removed := m.ctx.Session.UnfoldAtPoint(m.ctx.Doc, pos)
	L.Push(lua.LNumber(removed))
	return 1
}

// count() -> int
// Returns the number of live folds.
func (m *FoldModule) count(L *lua.LState) int {
	reg := m.ctx.Session.Registry(m.ctx.Doc)
	if reg == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(reg.Count()))
	return 1
}

// spans() -> table
// Returns the live fold spans as an array of {start=, ["end"]=} tables.
func (m *FoldModule) spans(L *lua.LState) int {
	result := L.NewTable()

	reg := m.ctx.Session.Registry(m.ctx.Doc)
	if reg == nil {
		L.Push(result)
		return 1
	}

	for _, span := range reg.Ranges() {
		entry := L.NewTable()
		L.SetField(entry, "start", lua.LNumber(span.Start))
		L.SetField(entry, "end", lua.LNumber(span.End))
		result.Append(entry)
	}
	L.Push(result)
	return 1
}
