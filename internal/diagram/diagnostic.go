package diagram

import (
	"fmt"
	"strings"
)

// Diagnostic describes input the parser skipped over or had to guess about.
type Diagnostic struct {
	Line    int    // 1-based line number
	Text    string // trimmed line text, empty for end-of-input findings
	Message string
}

func (d Diagnostic) String() string {
	if d.Text == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("line %d: %s (%q)", d.Line, d.Message, d.Text)
}

// SyntaxError is returned in strict mode when a diagram produced diagnostics.
type SyntaxError struct {
	Diagnostics []Diagnostic
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("diagram has %d problem(s): %s", len(e.Diagnostics), strings.Join(msgs, "; "))
}
