package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks yes/no questions on an interactive terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// AskConfirmation returns true for y/yes. force skips the question.
func (p *Prompter) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(p.out, "%s (y/N): ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
