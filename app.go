package funcli

import (
	"errors"
	"fmt"

	"github.com/mfridman/funcli/pkg/textutil"
)

// App is the root of the command tree: a flat set of commands plus single-level namespaces, each
// grouping its own flat set of commands. The tree is assembled once at startup and is read-only
// during dispatch.
type App struct {
	// Name is the program name used in usage text.
	Name string

	// ShortHelp describes the program in one line.
	ShortHelp string

	commands   map[string]*Command   // root commands, alias entries included
	namespaces map[string]*namespace // name -> group
	order      []string              // primary root names in registration order
}

// namespace groups commands under a shared first token. It has no executable body of its own.
type namespace struct {
	name     string
	commands map[string]*Command // alias entries included
	order    []string            // primary names in registration order
}

// New returns an empty App with the given program name.
func New(name string) *App {
	return &App{
		Name:       name,
		commands:   make(map[string]*Command),
		namespaces: make(map[string]*namespace),
	}
}

// Add registers commands at the root scope. It fails on the first invalid command or name
// collision, leaving earlier commands registered.
func (a *App) Add(cmds ...*Command) error {
	return a.add("", cmds)
}

// AddNamespace registers commands under a named group, creating the group on first use. Repeated
// calls with the same name accumulate commands in it.
func (a *App) AddNamespace(name string, cmds ...*Command) error {
	if name == "" {
		return errors.New("namespace has no name")
	}
	return a.add(name, cmds)
}

func (a *App) add(ns string, cmds []*Command) error {
	scope := a.commands
	var group *namespace
	if ns != "" {
		ns = textutil.Hyphenate(ns)
		if ns == "help" {
			return errors.New(`namespace name "help" is reserved`)
		}
		if _, ok := a.commands[ns]; ok {
			return &DuplicateNameError{Name: ns}
		}
		group = a.namespaces[ns]
		if group == nil {
			group = &namespace{name: ns, commands: make(map[string]*Command)}
			a.namespaces[ns] = group
			a.order = append(a.order, ns)
		}
		scope = group.commands
	}
	for _, c := range cmds {
		if c == nil {
			return errors.New("nil command")
		}
		if err := c.finalize(); err != nil {
			return err
		}
		names := append([]string{c.name()}, c.aliasNames()...)
		for _, n := range names {
			if n == "help" {
				return fmt.Errorf("command name %q is reserved", n)
			}
			if _, ok := scope[n]; ok {
				return &DuplicateNameError{Scope: ns, Name: n}
			}
			if ns == "" {
				if _, ok := a.namespaces[n]; ok {
					return &DuplicateNameError{Name: n}
				}
			}
		}
		for _, n := range names {
			scope[n] = c
		}
		if group == nil {
			a.order = append(a.order, c.name())
		} else {
			group.order = append(group.order, c.name())
		}
	}
	return nil
}
