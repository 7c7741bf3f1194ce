package rope

// Summary holds aggregated metrics for a span of text. Summaries form a
// monoid under Add, which is what lets internal nodes answer length and
// line queries without touching chunk data.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Newlines is the number of '\n' bytes.
	Newlines int

	// FirstLineLen is the byte length of the text before the first
	// newline (the whole span when there is none).
	FirstLineLen int

	// LastLineLen is the byte length of the text after the last newline.
	LastLineLen int
}

// Add combines two adjacent summaries.
func (s Summary) Add(other Summary) Summary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	out := Summary{
		Bytes:    s.Bytes + other.Bytes,
		Newlines: s.Newlines + other.Newlines,
	}
	if s.Newlines == 0 {
		out.FirstLineLen = s.FirstLineLen + other.FirstLineLen
	} else {
		out.FirstLineLen = s.FirstLineLen
	}
	if other.Newlines == 0 {
		out.LastLineLen = s.LastLineLen + other.LastLineLen
	} else {
		out.LastLineLen = other.LastLineLen
	}
	return out
}

// IsZero returns true for the empty-span summary.
func (s Summary) IsZero() bool {
	return s.Bytes == 0
}

// summarize computes the metrics of a string in one pass.
func summarize(s string) Summary {
	var sum Summary
	sum.Bytes = len(s)
	lineStart := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if sum.Newlines == 0 {
				sum.FirstLineLen = i
			}
			sum.Newlines++
			lineStart = i + 1
		}
	}
	sum.LastLineLen = len(s) - lineStart
	if sum.Newlines == 0 {
		sum.FirstLineLen = len(s)
	}
	return sum
}
