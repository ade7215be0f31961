package journey

import "fmt"

// SelectorKind tells an engine how to match a selector's text
type SelectorKind int

const (
	// TextSelector matches the element whose own text contains Text
	TextSelector SelectorKind = iota
	// ButtonSelector matches a <button> whose text contains Text
	ButtonSelector
)

// Selector locates DOM content by visible text
type Selector struct {
	Kind SelectorKind
	Text string
}

// Text returns a selector matching any element containing text
func Text(text string) Selector {
	return Selector{Kind: TextSelector, Text: text}
}

// Button returns a selector matching a button containing text
func Button(text string) Selector {
	return Selector{Kind: ButtonSelector, Text: text}
}

func (s Selector) String() string {
	switch s.Kind {
	case ButtonSelector:
		return fmt.Sprintf("button %q", s.Text)
	default:
		return fmt.Sprintf("text %q", s.Text)
	}
}
