// Package undo records invertible edit operations and groups them into
// undoable units. The engine owns only history bookkeeping; it hands
// groups back to the caller, which replays them against its own store
// and style index. That keeps the data flow one-directional: the engine
// never holds a reference into the document.
package undo
