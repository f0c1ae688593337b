// Package fold implements the fold-range registry: creation, tracking,
// edit-driven invalidation, point lookup, and cross-lifecycle persistence
// of folded (hidden) spans of document text.
//
// # Core Components
//
//   - [Range]: one folded span with a live/dead state, owning the handle
//     of its rendering artifact
//   - [Registry]: per-document owner and index of live Ranges
//   - [Store]: process-wide one-shot save/restore map keyed by document
//     identity, used across a document's unload/reload cycle
//   - [OccurrenceScanner]: one-pass literal search producing every
//     non-overlapping match span in document order
//
// The registry subscribes to its document's pre-edit notifications. Any
// edit whose range touches a live fold, boundary-inclusive, destroys
// that fold before the edit lands; edits strictly before a fold shift
// its span by the edit's delta so the fold keeps hiding the same text.
//
// Rendering is delegated to a [Renderer] collaborator: hiding a span
// yields an artifact handle, revealing takes it back. Folds never hold
// visual state themselves.
package fold
