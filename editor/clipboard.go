package editor

// Clipboard is the cut/copy/paste capability the embedding application
// injects. The engine never reaches for a global clipboard on its own;
// without an injected one the clipboard commands report
// OutcomeContinue and leave the document alone.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// MemClipboard is a process-local Clipboard, useful for tests and for
// applications without a system clipboard.
type MemClipboard struct {
	text string
}

func (c *MemClipboard) Get() (string, error) {
	return c.text, nil
}

func (c *MemClipboard) Set(text string) error {
	c.text = text
	return nil
}
