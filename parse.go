package funcli

import (
	"flag"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mfridman/xflag"

	"github.com/mfridman/funcli/pkg/suggest"
)

// invocation is the product of a successful parse: the selected command and the state to run it
// with.
type invocation struct {
	cmd   *Command
	state *State
}

// parse resolves args to a single command and binds its flags and positionals. It returns a
// *helpError for help requests, a *NoCommandError when resolution stops at the root or a bare
// namespace, and a *usageError for anything the user got wrong.
func (a *App) parse(args []string) (*invocation, error) {
	// Split off everything after a -- delimiter; it is passed through unparsed.
	argsToParse := args
	var passthrough []string
	if i := slices.Index(args, "--"); i >= 0 {
		argsToParse = args[:i]
		passthrough = args[i+1:]
	}

	// The reserved help command mirrors --help: "help [namespace] [command]".
	if len(argsToParse) > 0 && argsToParse[0] == "help" {
		return nil, &helpError{path: argsToParse[1:]}
	}

	var (
		cmd  *Command
		ns   *namespace
		path []string
	)
	for _, tok := range argsToParse {
		if tok == "-h" || tok == "--h" || tok == "-help" || tok == "--help" {
			return nil, &helpError{path: path}
		}
		if strings.HasPrefix(tok, "-") {
			continue
		}
		if cmd != nil {
			continue // positional for the selected command
		}
		if ns == nil {
			if c, ok := a.commands[tok]; ok {
				cmd = c
				path = append(path, tok)
				continue
			}
			if n, ok := a.namespaces[tok]; ok {
				ns = n
				path = append(path, tok)
				continue
			}
			return nil, a.unknownName(nil, path, tok)
		}
		if c, ok := ns.commands[tok]; ok {
			cmd = c
			path = append(path, tok)
			continue
		}
		return nil, a.unknownName(ns, path, tok)
	}
	if cmd == nil {
		return nil, &NoCommandError{Path: path}
	}

	state := &State{
		values: make(map[string]any),
		path:   path,
	}

	fs := flag.NewFlagSet(strings.Join(append([]string{a.Name}, path...), " "), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var flagSpecs, posSpecs []Arg
	for _, spec := range cmd.spec {
		if spec.isFlag() {
			flagSpecs = append(flagSpecs, spec)
			if err := registerFlag(fs, spec); err != nil {
				return nil, err
			}
		} else {
			posSpecs = append(posSpecs, spec)
		}
	}

	if err := xflag.ParseToEnd(fs, argsToParse); err != nil {
		return nil, &usageError{path: path, err: err}
	}

	// Required flags are checked against the raw argv: the flag set cannot distinguish an
	// explicit default from an absent flag.
	for _, spec := range flagSpecs {
		if !spec.Required {
			continue
		}
		if !flagPresent(argsToParse, spec) {
			return nil, &usageError{path: path, err: fmt.Errorf("required flag %q not set", "--"+spec.name())}
		}
	}
	if err := checkFlagChoices(fs, flagSpecs, path); err != nil {
		return nil, err
	}

	// Drop the command path tokens from the leftover arguments.
	pos := fs.Args()
	for _, p := range path {
		if len(pos) > 0 && pos[0] == p {
			pos = pos[1:]
		}
	}

	if err := bindPositionals(state, posSpecs, pos, path); err != nil {
		return nil, err
	}
	state.Args = append(slices.Clone(pos), passthrough...)
	state.flags = fs
	return &invocation{cmd: cmd, state: state}, nil
}

func (a *App) unknownName(ns *namespace, path []string, tok string) error {
	var known []string
	if ns != nil {
		known = ns.order
	} else {
		known = a.order
	}
	err := fmt.Errorf("invalid choice: %q", tok)
	if suggestions := suggest.FindSimilar(tok, known, 3); len(suggestions) > 0 {
		err = fmt.Errorf("invalid choice: %q. Did you mean one of these?\n\t%s",
			tok, strings.Join(suggestions, "\n\t"))
	}
	return &usageError{path: path, err: err}
}

// registerFlag binds one flag declaration, under every spelling, to the flag set.
func registerFlag(fs *flag.FlagSet, spec Arg) error {
	var value flag.Value
	switch {
	case spec.Value != nil:
		value = spec.Value
	case spec.Default != nil && reflect.TypeOf(spec.Default).Kind() == reflect.Bool:
		def := reflect.ValueOf(spec.Default).Bool()
		value = &toggleValue{def: def, v: def}
	default:
		convert, err := converterFor(spec.Default)
		if err != nil {
			return fmt.Errorf("flag %q: %w", spec.name(), err)
		}
		value = &argValue{v: spec.Default, convert: convert}
	}
	for _, name := range spec.flagNames() {
		fs.Var(value, name, spec.Help)
	}
	return nil
}

// flagPresent reports whether any spelling of the flag occurs in the raw arguments, matching both
// single and double dash forms.
func flagPresent(args []string, spec Arg) bool {
	for _, name := range spec.flagNames() {
		for _, arg := range args {
			if arg == "-"+name || arg == "--"+name ||
				strings.HasPrefix(arg, "-"+name+"=") ||
				strings.HasPrefix(arg, "--"+name+"=") {
				return true
			}
		}
	}
	return false
}

func checkFlagChoices(fs *flag.FlagSet, flagSpecs []Arg, path []string) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, spec := range flagSpecs {
		if len(spec.Choices) == 0 {
			continue
		}
		for _, name := range spec.flagNames() {
			if !set[name] {
				continue
			}
			if got := fs.Lookup(name).Value.String(); !slices.Contains(spec.Choices, got) {
				return &usageError{path: path, err: fmt.Errorf("argument %q: invalid choice: %q (choose from %s)",
					"--"+spec.name(), got, strings.Join(spec.Choices, ", "))}
			}
			break
		}
	}
	return nil
}

// bindPositionals assigns leftover tokens to positional declarations in order, honoring arity.
func bindPositionals(state *State, specs []Arg, pos, path []string) error {
	i := 0
	for _, spec := range specs {
		name := spec.name()
		switch spec.NArgs {
		case "":
			if i >= len(pos) {
				return &usageError{path: path, err: fmt.Errorf("too few arguments: missing %q", name)}
			}
			v, err := convertPositional(spec, pos[i], path)
			if err != nil {
				return err
			}
			state.values[name] = v
			i++
		case "?":
			if i < len(pos) {
				v, err := convertPositional(spec, pos[i], path)
				if err != nil {
					return err
				}
				state.values[name] = v
				i++
			} else {
				// Record the declaration even when absent so Get resolves it to the default, or
				// the zero value, instead of treating it as undeclared.
				state.values[name] = spec.Default
			}
		case "*", "+":
			rest := pos[i:]
			if spec.NArgs == "+" && len(rest) == 0 {
				return &usageError{path: path, err: fmt.Errorf("too few arguments: missing %q", name)}
			}
			for _, tok := range rest {
				if len(spec.Choices) > 0 && !slices.Contains(spec.Choices, tok) {
					return invalidChoice(spec, tok, path)
				}
			}
			state.values[name] = slices.Clone(rest)
			i = len(pos)
		}
	}
	if i < len(pos) {
		return &usageError{path: path, err: fmt.Errorf("unrecognized arguments: %s", strings.Join(pos[i:], " "))}
	}
	return nil
}

func convertPositional(spec Arg, tok string, path []string) (any, error) {
	if len(spec.Choices) > 0 && !slices.Contains(spec.Choices, tok) {
		return nil, invalidChoice(spec, tok, path)
	}
	if spec.Type == nil {
		return tok, nil
	}
	v, err := spec.Type(tok)
	if err != nil {
		return nil, &usageError{path: path, err: fmt.Errorf("argument %q: %w", spec.name(), err)}
	}
	return v, nil
}

func invalidChoice(spec Arg, tok string, path []string) error {
	return &usageError{path: path, err: fmt.Errorf("argument %q: invalid choice: %q (choose from %s)",
		spec.name(), tok, strings.Join(spec.Choices, ", "))}
}

// argValue adapts a converter to the flag.Value contract.
type argValue struct {
	v       any
	convert func(string) (any, error)
}

func (a *argValue) Set(s string) error {
	v, err := a.convert(s)
	if err != nil {
		return err
	}
	a.v = v
	return nil
}

func (a *argValue) Get() any { return a.v }

func (a *argValue) String() string {
	if a == nil || a.v == nil {
		return ""
	}
	return fmt.Sprint(a.v)
}

// toggleValue is a bool flag whose presence yields the inverse of its default, covering both the
// default-false and default-true cases with one rule.
type toggleValue struct {
	def, v bool
}

func (t *toggleValue) IsBoolFlag() bool { return true }

func (t *toggleValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		t.v = !t.def
	} else {
		t.v = t.def
	}
	return nil
}

func (t *toggleValue) Get() any { return t.v }

func (t *toggleValue) String() string { return strconv.FormatBool(t.v) }
