package funcli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmOptions configures [Confirm]. The zero value (or nil) prompts on the process's standard
// streams with no assumed answer.
type ConfirmOptions struct {
	// Default is the answer assumed when the user submits an empty line. When nil, an empty line
	// is an unanswered prompt.
	Default *bool

	Stdin  io.Reader
	Stdout io.Writer
}

// Confirm prints prompt followed by a y/n hint and reads one line of input. It returns the
// answer and whether one was given: responses starting with y/Y are affirmative, n/N negative,
// an empty line takes the default when one is set, and anything else leaves ok false.
//
// The hint reflects the default: "(y/n)" with none, "(Y/n)" for yes, "(y/N)" for no.
func Confirm(prompt string, options *ConfirmOptions) (answer, ok bool) {
	if options == nil {
		options = &ConfirmOptions{}
	}
	in := options.Stdin
	if in == nil {
		in = os.Stdin
	}
	out := options.Stdout
	if out == nil {
		out = os.Stdout
	}

	hint := "(y/n)"
	if options.Default != nil {
		if *options.Default {
			hint = "(Y/n)"
		} else {
			hint = "(y/N)"
		}
	}
	fmt.Fprintf(out, "%s? %s ", prompt, hint)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false, false
	}
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		if options.Default != nil {
			return *options.Default, true
		}
		return false, false
	case line[0] == 'y' || line[0] == 'Y':
		return true, true
	case line[0] == 'n' || line[0] == 'N':
		return false, true
	}
	return false, false
}
