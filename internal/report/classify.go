// File path: internal/report/classify.go
package report

import "strings"

// Kind tags one render instruction.
type Kind int

const (
	Spacer Kind = iota
	Heading
	Bullet
	Body
)

// Instruction is the layout decision for one line of persona text.
type Instruction struct {
	Kind Kind
	Text string
}

// Classify maps one line of markdown-ish persona text to a render
// instruction. Each line is classified on its own, top to bottom, with no
// multi-line merging: two consecutive blank lines are two spacers. Kept
// free of rendering dependencies so the layout rules stay unit-testable.
func Classify(line string) Instruction {
	line = strings.TrimSpace(line)
	if line == "" {
		return Instruction{Kind: Spacer}
	}
	if len(line) >= 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
		return Instruction{Kind: Heading, Text: strings.ReplaceAll(line, "**", "")}
	}
	if strings.HasPrefix(line, "#") {
		text := strings.TrimSpace(strings.TrimLeft(line, "#"))
		return Instruction{Kind: Heading, Text: text}
	}
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return Instruction{Kind: Bullet, Text: strings.TrimSpace(line[len(marker):])}
		}
	}
	return Instruction{Kind: Body, Text: strings.ReplaceAll(line, "**", "")}
}

// ClassifyAll splits persona text on line breaks and classifies every line
// in one pass.
func ClassifyAll(text string) []Instruction {
	lines := strings.Split(text, "\n")
	out := make([]Instruction, 0, len(lines))
	for _, line := range lines {
		out = append(out, Classify(line))
	}
	return out
}
