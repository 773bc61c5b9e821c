package funcli

import "slices"

// mergeArgs lays explicit declarations over inferred ones. A declared entry whose option strings
// match an inferred entry overrides it in place, field-wise; unmatched declared entries are
// appended in declaration order, with a later duplicate replacing an earlier one. Positionals are
// stably moved ahead of flags so the engine binds them as one block.
func mergeArgs(inferred, declared []Arg) []Arg {
	merged := slices.Clone(inferred)
	for _, d := range declared {
		if i := slices.IndexFunc(merged, d.sameOptions); i >= 0 {
			if i < len(inferred) {
				// Inherit from the inferred declaration only; an earlier explicit duplicate in
				// the same slot is discarded, not layered.
				merged[i] = overrideArg(inferred[i], d)
			} else {
				// Two explicit declarations of the same options: the later one wins outright.
				merged[i] = d
			}
			continue
		}
		merged = append(merged, d)
	}
	out := make([]Arg, 0, len(merged))
	for _, a := range merged {
		if !a.isFlag() {
			out = append(out, a)
		}
	}
	for _, a := range merged {
		if a.isFlag() {
			out = append(out, a)
		}
	}
	return out
}

// overrideArg merges base into over: fields the overriding declaration leaves unset are inherited
// from the matching inferred one.
func overrideArg(base, over Arg) Arg {
	out := over
	if out.Default == nil {
		out.Default = base.Default
	}
	if out.Help == "" {
		out.Help = base.Help
	}
	if out.NArgs == "" {
		out.NArgs = base.NArgs
	}
	if out.Choices == nil {
		out.Choices = base.Choices
	}
	if !out.Required {
		out.Required = base.Required
	}
	if out.Type == nil {
		out.Type = base.Type
	}
	if out.Value == nil {
		out.Value = base.Value
	}
	return out
}
