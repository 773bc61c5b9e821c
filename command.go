package funcli

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mfridman/funcli/pkg/textutil"
)

// Command is a single executable command: a function plus the metadata needed to expose it on the
// command line. Commands whose function wants typed arguments are built with [Typed]; commands
// that work off the raw parsed [State] set Exec directly.
type Command struct {
	// Name identifies the command. Underscores render as hyphens, so a name like "do_thing" is
	// invoked as "do-thing".
	Name string

	// Aliases are alternate names the command is reachable under. They share the command's scope
	// and must not collide with other names in it.
	Aliases []string

	// ShortHelp is a brief description of the command's purpose, shown in help text.
	ShortHelp string

	// Args declares the command's arguments explicitly, in order. For typed commands these merge
	// over the declarations inferred from the params struct: a declaration naming the same
	// option strings overrides the inferred one field-wise, anything else is appended.
	Args []Arg

	// WrapErrors lists error targets that are reported instead of propagated. An invocation
	// error matching one of them (via errors.Is) becomes a single line on the error stream and
	// dispatch returns nil; any other error is returned to the caller.
	WrapErrors []error

	// Exec runs the command against the parsed state. Leave nil for commands built with [Typed].
	Exec func(ctx context.Context, s *State) (any, error)

	params reflect.Type                                  // non-nil selects the typed calling convention
	call   func(ctx context.Context, s *State) (any, error) // unified invocation, set at registration
	spec   []Arg                                         // merged declarations, set at registration
}

// Typed builds a command whose function receives a params struct populated from the command line
// instead of the raw [State]. The struct's exported fields define the command's arguments; see
// the package documentation for the field and tag rules. Additional metadata (aliases, help,
// explicit Args) may be set on the returned Command before registering it.
func Typed[P any](name string, fn func(ctx context.Context, params P) (any, error)) *Command {
	c := &Command{
		Name:   name,
		params: reflect.TypeFor[P](),
	}
	c.call = func(ctx context.Context, s *State) (any, error) {
		var p P
		if err := fillParams(&p, s); err != nil {
			return nil, err
		}
		return fn(ctx, p)
	}
	return c
}

// name returns the effective invocation name.
func (c *Command) name() string { return textutil.Hyphenate(c.Name) }

func (c *Command) aliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for _, a := range c.Aliases {
		names = append(names, textutil.Hyphenate(a))
	}
	return names
}

// finalize validates the command and computes its merged argument declarations. It runs once,
// when the command is registered.
func (c *Command) finalize() error {
	if c.Name == "" {
		return errors.New("command has no name")
	}
	if strings.ContainsAny(c.Name, " \t") {
		return fmt.Errorf("command name %q contains spaces", c.Name)
	}
	if c.params != nil && c.Exec != nil {
		return fmt.Errorf("command %q sets Exec but was built with Typed", c.Name)
	}
	if c.params == nil {
		if c.Exec == nil {
			return fmt.Errorf("command %q has no execution function", c.Name)
		}
		c.call = c.Exec
	}
	var inferred []Arg
	if c.params != nil {
		var err error
		inferred, err = inferArgs(c.params)
		if err != nil {
			return fmt.Errorf("command %q: %w", c.Name, err)
		}
	}
	for i, a := range c.Args {
		if err := a.validate(); err != nil {
			return fmt.Errorf("command %q: argument %d: %w", c.Name, i+1, err)
		}
	}
	c.spec = mergeArgs(inferred, c.Args)

	// Destination names must be unique across the merged declarations, or the flag engine would
	// see the same name registered twice.
	seen := make(map[string]bool)
	for _, spec := range c.spec {
		names := []string{spec.name()}
		if spec.isFlag() {
			names = spec.flagNames()
		}
		for _, n := range names {
			if seen[n] {
				return fmt.Errorf("command %q: argument name %q declared twice", c.Name, n)
			}
			seen[n] = true
		}
	}
	return nil
}
