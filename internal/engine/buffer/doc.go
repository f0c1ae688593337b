// Package buffer provides the document abstraction the fold subsystem
// operates on: position-addressed UTF-8 text with byte-offset ranges,
// an active selection, a stable identity for persistence, and synchronous
// edit notifications delivered before a modification is applied.
//
// Positions are byte offsets ([ByteOffset]) and half-open ranges
// ([Range], [start, end)). Line/column coordinates ([Point]) are derived
// on demand for display purposes only.
//
// Edit listeners registered with [Document.OnEdit] run synchronously
// with the affected range of the pending edit, before the text changes.
// Listeners must not call back into mutating Document methods.
package buffer
