// Package metrics memoizes per-line display measurements: screen width
// and wrap-segment boundaries. Entries are keyed by wrap mode and
// viewport width as well as line index, so a resize or mode switch
// makes old entries stale rather than wrong. The cache is derived,
// disposable state: it can be cleared at any time and rebuilt lazily
// on access, and it learns about edits only through pushed edit deltas.
package metrics
