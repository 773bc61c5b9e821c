package funcli

import (
	"slices"
	"strings"
)

// Complete returns candidate next tokens for shell completion. words are the tokens typed so far
// and cword is the index of the word being completed; cword == len(words) means the cursor sits
// on a new, empty word. Matching is a case-sensitive prefix match on the partial word.
//
// With no command path typed yet the candidates are all root names (commands, their aliases, and
// namespaces); after a namespace the candidates are its command and alias names; after a full
// command there is nothing left to offer (flag completion is out of scope). The result is
// deduplicated and sorted.
func (a *App) Complete(words []string, cword int) []string {
	if cword < 0 {
		return nil
	}
	partial := ""
	if cword < len(words) {
		partial = words[cword]
	}
	path := words[:min(cword, len(words))]

	var candidates []string
	switch len(path) {
	case 0:
		for name := range a.commands {
			candidates = append(candidates, name)
		}
		for name := range a.namespaces {
			candidates = append(candidates, name)
		}
	case 1:
		ns, ok := a.namespaces[path[0]]
		if !ok {
			return nil // a command, or an unknown token, takes no further candidates here
		}
		for name := range ns.commands {
			candidates = append(candidates, name)
		}
	default:
		return nil
	}

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
