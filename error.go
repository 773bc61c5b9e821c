package funcli

import (
	"fmt"
	"strings"
)

// NoCommandError is reported when input resolves to the bare root or a bare namespace without
// selecting a command.
type NoCommandError struct {
	// Path holds the tokens that did resolve, e.g. the namespace name. May be empty.
	Path []string
}

func (e *NoCommandError) Error() string {
	if len(e.Path) == 0 {
		return "too few arguments: no command selected"
	}
	return fmt.Sprintf("%s: too few arguments: no command selected", strings.Join(e.Path, " "))
}

// CommandError wraps an invocation failure that the command declared as reportable via
// [Command.WrapErrors]. Dispatch writes it to the error stream instead of returning it.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// DuplicateNameError is returned when a command, alias, or namespace name is registered twice in
// the same scope.
type DuplicateNameError struct {
	// Scope is the namespace name, or empty for the root scope.
	Scope string
	Name  string
}

func (e *DuplicateNameError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("name %q already registered", e.Name)
	}
	return fmt.Sprintf("name %q already registered in namespace %q", e.Name, e.Scope)
}

// usageError is an argument-parsing failure. Dispatch reports it and terminates the process with
// status 2 through the configured exit function.
type usageError struct {
	path []string
	err  error
}

func (e *usageError) Error() string {
	if len(e.path) == 0 {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %v", strings.Join(e.path, " "), e.err)
}

func (e *usageError) Unwrap() error { return e.err }

// helpError carries a help request out of parsing; dispatch renders usage for the path and
// returns successfully.
type helpError struct {
	path []string
}

func (e *helpError) Error() string { return "help requested" }
