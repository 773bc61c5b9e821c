package funcli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mfridman/funcli/pkg/textutil"
)

// usage renders help text for a path: the root, a namespace, a root command, or a namespaced
// command.
func (a *App) usage(path []string) (string, error) {
	switch len(path) {
	case 0:
		return a.rootUsage(), nil
	case 1:
		if ns, ok := a.namespaces[path[0]]; ok {
			return a.namespaceUsage(ns), nil
		}
		if c, ok := a.commands[path[0]]; ok {
			return a.commandUsage(path, c), nil
		}
	case 2:
		if ns, ok := a.namespaces[path[0]]; ok {
			if c, ok := ns.commands[path[1]]; ok {
				return a.commandUsage(path, c), nil
			}
		}
	}
	return "", &usageError{err: fmt.Errorf("unknown help topic %q", strings.Join(path, " "))}
}

type usageEntry struct {
	name string
	help string
}

func (a *App) rootUsage() string {
	var b strings.Builder
	if a.ShortHelp != "" {
		for _, line := range textutil.Wrap(a.ShortHelp, 80) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}
	fmt.Fprintf(&b, "Usage:\n  %s <command> [flags] [arguments]\n\n", a.Name)

	var entries []usageEntry
	for _, name := range a.order {
		if ns, ok := a.namespaces[name]; ok {
			entries = append(entries, usageEntry{name: name, help: "commands: " + strings.Join(ns.order, ", ")})
			continue
		}
		if c, ok := a.commands[name]; ok {
			entries = append(entries, usageEntry{name: name, help: c.ShortHelp})
		}
	}
	if len(entries) > 0 {
		slices.SortFunc(entries, func(a, b usageEntry) int {
			return cmp.Compare(a.name, b.name)
		})
		b.WriteString("Available Commands:\n")
		writeEntries(&b, entries)
		b.WriteRune('\n')
	}
	fmt.Fprintf(&b, "Use \"%s help [command]\" for more information about a command.\n", a.Name)
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) namespaceUsage(ns *namespace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage:\n  %s %s <command> [flags] [arguments]\n\n", a.Name, ns.name)

	var entries []usageEntry
	for _, name := range ns.order {
		if c, ok := ns.commands[name]; ok {
			entries = append(entries, usageEntry{name: name, help: c.ShortHelp})
		}
	}
	if len(entries) > 0 {
		slices.SortFunc(entries, func(a, b usageEntry) int {
			return cmp.Compare(a.name, b.name)
		})
		b.WriteString("Available Commands:\n")
		writeEntries(&b, entries)
		b.WriteRune('\n')
	}
	fmt.Fprintf(&b, "Use \"%s help %s [command]\" for more information about a command.\n", a.Name, ns.name)
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) commandUsage(path []string, c *Command) string {
	var b strings.Builder
	if c.ShortHelp != "" {
		for _, line := range textutil.Wrap(c.ShortHelp, 80) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	// Help may be reached through an alias; the usage line shows the canonical name.
	display := slices.Clone(path)
	display[len(display)-1] = c.name()
	usage := a.Name + " " + strings.Join(display, " ")
	var positionals, flagSpecs []Arg
	for _, spec := range c.spec {
		if spec.isFlag() {
			flagSpecs = append(flagSpecs, spec)
		} else {
			positionals = append(positionals, spec)
		}
	}
	if len(flagSpecs) > 0 {
		usage += " [flags]"
	}
	for _, spec := range positionals {
		usage += " " + positionalDisplay(spec)
	}
	fmt.Fprintf(&b, "Usage:\n  %s\n\n", usage)

	if len(c.Aliases) > 0 {
		fmt.Fprintf(&b, "Aliases:\n  %s\n\n", strings.Join(c.aliasNames(), ", "))
	}

	if len(positionals) > 0 {
		var entries []usageEntry
		for _, spec := range positionals {
			help := spec.Help
			if len(spec.Choices) > 0 {
				help = appendDetail(help, "one of: "+strings.Join(spec.Choices, ", "))
			}
			entries = append(entries, usageEntry{name: positionalDisplay(spec), help: help})
		}
		b.WriteString("Arguments:\n")
		writeEntries(&b, entries)
		b.WriteRune('\n')
	}

	if len(flagSpecs) > 0 {
		entries := make([]usageEntry, 0, len(flagSpecs))
		for _, spec := range flagSpecs {
			help := spec.Help
			if d := defaultDisplay(spec.Default); d != "" {
				help = appendDetail(help, "default "+d)
			}
			if spec.Required {
				help = appendDetail(help, "required")
			}
			entries = append(entries, usageEntry{name: strings.Join(spec.Flags, ", "), help: help})
		}
		slices.SortFunc(entries, func(a, b usageEntry) int {
			return cmp.Compare(a.name, b.name)
		})
		b.WriteString("Flags:\n")
		writeEntries(&b, entries)
		b.WriteRune('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func positionalDisplay(spec Arg) string {
	name := spec.name()
	switch spec.NArgs {
	case "?":
		return "[" + name + "]"
	case "*":
		return "[" + name + "...]"
	case "+":
		return "<" + name + "...>"
	default:
		return "<" + name + ">"
	}
}

func defaultDisplay(def any) string {
	if def == nil {
		return ""
	}
	s := fmt.Sprint(def)
	if s == "" || s == "false" {
		return ""
	}
	return s
}

func appendDetail(help, detail string) string {
	if help == "" {
		return "(" + detail + ")"
	}
	return help + " (" + detail + ")"
}

// writeEntries lays out name/description pairs with aligned, wrapped descriptions.
func writeEntries(b *strings.Builder, entries []usageEntry) {
	maxLen := 0
	for _, e := range entries {
		if len(e.name) > maxLen {
			maxLen = len(e.name)
		}
	}
	nameWidth := maxLen + 4
	wrapWidth := 80 - nameWidth
	for _, e := range entries {
		if e.help == "" {
			fmt.Fprintf(b, "  %s\n", e.name)
			continue
		}
		lines := textutil.Wrap(e.help, wrapWidth)
		padding := strings.Repeat(" ", maxLen-len(e.name)+4)
		fmt.Fprintf(b, "  %s%s%s\n", e.name, padding, lines[0])
		indent := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indent, line)
		}
	}
}
