package editor

// Outcome tells the surrounding widget what a command did, so it can
// decide whether to repaint and whether the document is dirty.
type Outcome int

const (
	// OutcomeContinue means the command did not apply here at all.
	OutcomeContinue Outcome = iota
	// OutcomeUnchanged means the command applied but changed nothing.
	OutcomeUnchanged
	// OutcomeChanged means visible state changed (cursor, selection)
	// but the text is identical.
	OutcomeChanged
	// OutcomeTextChanged means the document content changed.
	OutcomeTextChanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeChanged:
		return "changed"
	case OutcomeTextChanged:
		return "text-changed"
	}
	return "unknown"
}

// Max returns the stronger of two outcomes, for folding the results of
// compound commands.
func (o Outcome) Max(p Outcome) Outcome {
	if p > o {
		return p
	}
	return o
}
