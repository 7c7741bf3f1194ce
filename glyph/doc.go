// Package glyph shapes grapheme clusters into display glyphs: what to
// paint, how many screen columns it takes, and which source bytes it
// came from. The shaper expands tabs, substitutes control characters,
// honors soft hyphens and zero-width spaces as hidden break
// opportunities, and wraps lines in none, hard, or word mode.
//
// Shaping is lazy per screen row and supports skipping to a byte offset
// or past the rest of a line, so painting a viewport stays cheap on
// very long lines.
package glyph
