package rope

import "unicode/utf8"

// Chunk sizing. Chunks are kept small enough for cheap copies on edit
// and large enough to amortize per-node overhead.
const (
	maxChunkSize    = 256
	targetChunkSize = 192
)

// chunk is an immutable bounded string held by leaf nodes.
type chunk struct {
	data    string
	summary Summary
}

func newChunk(s string) chunk {
	return chunk{data: s, summary: summarize(s)}
}

func (c chunk) len() int {
	return len(c.data)
}

// split divides the chunk at a byte offset. The offset is snapped back
// to the nearest rune start so a chunk never ends mid-rune; grapheme
// boundaries are enforced by the store, not here.
func (c chunk) split(off int) (chunk, chunk) {
	if off <= 0 {
		return chunk{}, c
	}
	if off >= len(c.data) {
		return c, chunk{}
	}
	for off > 0 && !utf8.RuneStart(c.data[off]) {
		off--
	}
	return newChunk(c.data[:off]), newChunk(c.data[off:])
}

// splitIntoChunks slices s into chunks of roughly targetChunkSize bytes,
// cutting only at rune starts.
func splitIntoChunks(s string) []chunk {
	if len(s) == 0 {
		return nil
	}
	chunks := make([]chunk, 0, len(s)/targetChunkSize+1)
	for len(s) > 0 {
		n := targetChunkSize
		if n >= len(s) {
			chunks = append(chunks, newChunk(s))
			break
		}
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		if n == 0 {
			n = targetChunkSize // degenerate input, cut anyway
		}
		chunks = append(chunks, newChunk(s[:n]))
		s = s[n:]
	}
	return chunks
}
