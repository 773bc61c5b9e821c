package funcli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// State carries one parsed invocation: the values bound from the command line plus the I/O
// streams the command should use. A new State is produced per dispatch and discarded afterwards.
type State struct {
	// Args holds the positional tokens after flag parsing, in order, including anything after a
	// "--" delimiter.
	Args []string

	// Standard I/O streams, defaulted from DispatchOptions.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	flags  *flag.FlagSet  // parsed flag values
	values map[string]any // bound positional values by destination name
	path   []string       // resolved command path, e.g. ["greet", "hello"]
}

// Get retrieves a parsed value by its hyphenated destination name, with type inference:
//
//	text := funcli.Get[string](s, "text")
//	twice := funcli.Get[bool](s, "twice")
//
// If the name was never declared, or the requested type does not match the declared one, Get
// panics: both are programmer errors and it's better to fail LOUD and EARLY than to silently
// misbehave.
func Get[T any](s *State, name string) T {
	if v, ok := s.lookup(name); ok {
		if v == nil {
			return *new(T)
		}
		t, ok := v.(T)
		if !ok {
			panic(fmt.Sprintf("internal error: type mismatch for argument %q in command %q: have %T, requested %T",
				name, strings.Join(s.path, " "), v, *new(T)))
		}
		return t
	}
	panic(fmt.Sprintf("internal error: argument %q not declared for command %q", name, strings.Join(s.path, " ")))
}

// lookup fetches a bound value by destination name, positionals first, then flags.
func (s *State) lookup(name string) (any, bool) {
	if v, ok := s.values[name]; ok {
		return v, true
	}
	if s.flags != nil {
		if f := s.flags.Lookup(name); f != nil {
			if getter, ok := f.Value.(flag.Getter); ok {
				return getter.Get(), true
			}
			return f.Value.String(), true
		}
	}
	return nil, false
}
