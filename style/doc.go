// Package style maintains an interval index of caller-supplied style
// spans over a document. Spans are keyed by byte offsets because those
// are the only coordinates stable enough to binary-search; the index
// never interprets tags, it only stores and shifts them as the text
// changes. Overlap queries run in O(log n + k) for k matching spans.
package style
