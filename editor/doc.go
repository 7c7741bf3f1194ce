// Package editor is the facade tying the engine together: one Editor
// owns a document store, a style index, an undo engine, and a line
// metrics cache, and exposes the primitive commands a text widget
// submits. Every mutating command reports an Outcome so the widget can
// decide whether to repaint and whether to mark the document dirty.
//
// An Editor is not safe for concurrent use: it is driven by one widget
// state from one logical thread, performs no I/O, and never blocks.
package editor
