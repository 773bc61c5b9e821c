package funcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// DispatchOptions configures a single dispatch. The zero value (or nil) uses the process's
// standard streams and os.Exit.
type DispatchOptions struct {
	// Stdin, Stdout, and Stderr are the streams handed to the command. Injecting buffers here
	// intercepts all emitted output, for embedding and testing.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Exit is called with the process status when argument parsing fails. Defaults to os.Exit;
	// tests inject a recording function instead.
	Exit func(code int)
}

// Dispatch resolves args to a command, invokes it, and emits its result line by line on the
// output stream.
//
// Argument-parsing failures print the error to the error stream and terminate the process with
// status 2 through options.Exit. Help requests ("help", "-h", "--help") print usage on the output
// stream and return nil. A resolution that selects no command, or an invocation error matching
// one of the command's WrapErrors targets, is reported as a single line on the error stream and
// Dispatch returns nil so the caller may dispatch again. Any other invocation error is returned
// unreported.
//
// Results are normalized: nil emits nothing; a string or any other scalar emits one line; a
// []string emits one line per element; an iter.Seq[string] or iter.Seq2[string, error] is
// consumed lazily, emitting each produced line immediately, so lines produced before a
// mid-sequence error stay emitted.
func (a *App) Dispatch(ctx context.Context, args []string, options *DispatchOptions) error {
	options = checkAndSetOptions(options)
	inv, err := a.parse(args)
	if err != nil {
		return a.reportParseError(err, options)
	}
	s := inv.state
	s.Stdin = options.Stdin
	s.Stdout = options.Stdout
	s.Stderr = options.Stderr

	result, err := inv.cmd.call(ctx, s)
	if err != nil {
		return a.reportInvocationError(inv.cmd, err, options.Stderr)
	}
	if err := emit(result, s.Stdout); err != nil {
		return a.reportInvocationError(inv.cmd, err, options.Stderr)
	}
	return nil
}

func (a *App) reportParseError(err error, options *DispatchOptions) error {
	var help *helpError
	if errors.As(err, &help) {
		text, uerr := a.usage(help.path)
		if uerr != nil {
			err = uerr // fall through to the usage-error path below
		} else {
			fmt.Fprintln(options.Stdout, text)
			return nil
		}
	}
	var noCmd *NoCommandError
	if errors.As(err, &noCmd) {
		fmt.Fprintf(options.Stderr, "error: %v\n", noCmd)
		return nil
	}
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(options.Stderr, "error: %v\n", usage)
		fmt.Fprintf(options.Stderr, "Run %q for usage.\n", a.Name+" help")
		options.Exit(2)
		// Reached only when Exit was overridden.
		return usage
	}
	return err
}

// reportInvocationError writes declared errors to the error stream and propagates the rest.
func (a *App) reportInvocationError(c *Command, err error, stderr io.Writer) error {
	for _, target := range c.WrapErrors {
		if errors.Is(err, target) {
			fmt.Fprintf(stderr, "error: %v\n", &CommandError{Command: c.name(), Err: err})
			return nil
		}
	}
	return err
}

// emit normalizes a command's result onto the output stream.
func emit(result any, w io.Writer) error {
	switch r := result.(type) {
	case nil:
		return nil
	case string:
		fmt.Fprintln(w, r)
	case []string:
		for _, line := range r {
			fmt.Fprintln(w, line)
		}
	case iter.Seq[string]:
		for line := range r {
			fmt.Fprintln(w, line)
		}
	case iter.Seq2[string, error]:
		for line, err := range r {
			if err != nil {
				return err
			}
			fmt.Fprintln(w, line)
		}
	default:
		fmt.Fprintln(w, r)
	}
	return nil
}

func checkAndSetOptions(opt *DispatchOptions) *DispatchOptions {
	if opt == nil {
		opt = &DispatchOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Exit == nil {
		opt.Exit = os.Exit
	}
	return opt
}
