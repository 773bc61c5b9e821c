package funcli

import (
	"errors"
	"flag"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mfridman/funcli/pkg/textutil"
)

// Arg declares a single positional argument or flag for a command. Exactly one of Positional or
// Flags must be set; the two forms never mix within one declaration.
type Arg struct {
	// Positional is the display name of a positional argument.
	Positional string

	// Flags holds one or more flag spellings, e.g. "--verbose", "-v". All spellings share one
	// value.
	Flags []string

	// Default is the value used when a flag is absent. Its dynamic type selects the converter for
	// the flag's values: string, bool, int, int64, uint, float64, time.Duration, or any type whose
	// underlying type is one of those. A bool default makes the flag a toggle: presence on the
	// command line yields the inverse of the default.
	Default any

	// Help is the one-line description shown in usage text.
	Help string

	// NArgs controls positional arity: "" exactly one, "?" zero or one, "*" any number, "+" one
	// or more. Flags always take exactly one value.
	NArgs string

	// Choices restricts the raw values accepted for this argument.
	Choices []string

	// Required marks a flag that must be present on the command line.
	Required bool

	// Type converts the raw token of a single-value positional argument. When nil the token is
	// kept as a string. Variadic positionals are always bound as []string, and flags derive
	// their converter from Default instead.
	Type func(string) (any, error)

	// Value optionally supplies a custom flag.Value; it is handed to the flag engine as-is and
	// takes precedence over Default for flags.
	Value flag.Value
}

func (a Arg) isFlag() bool { return len(a.Flags) > 0 }

// name returns the destination key for this argument: the positional name, or the longest flag
// spelling stripped of leading dashes, hyphenated.
func (a Arg) name() string {
	if a.Positional != "" {
		return textutil.Hyphenate(a.Positional)
	}
	var long string
	for _, f := range a.Flags {
		if trimmed := strings.TrimLeft(f, "-"); len(trimmed) > len(long) {
			long = trimmed
		}
	}
	return textutil.Hyphenate(long)
}

// flagNames returns every spelling stripped of leading dashes, hyphenated.
func (a Arg) flagNames() []string {
	names := make([]string, 0, len(a.Flags))
	for _, f := range a.Flags {
		names = append(names, textutil.Hyphenate(strings.TrimLeft(f, "-")))
	}
	return names
}

func (a Arg) validate() error {
	if a.Positional == "" && len(a.Flags) == 0 {
		return errors.New("declares neither a positional name nor flag spellings")
	}
	if a.Positional != "" && len(a.Flags) > 0 {
		return fmt.Errorf("mixes positional name %q with flag spellings", a.Positional)
	}
	if strings.HasPrefix(a.Positional, "-") {
		return fmt.Errorf("positional name %q starts with a dash", a.Positional)
	}
	for _, f := range a.Flags {
		if !strings.HasPrefix(f, "-") || strings.TrimLeft(f, "-") == "" {
			return fmt.Errorf("flag spelling %q is not dash-prefixed", f)
		}
	}
	switch a.NArgs {
	case "", "?", "*", "+":
	default:
		return fmt.Errorf("argument %q has unsupported arity %q", a.name(), a.NArgs)
	}
	if a.isFlag() {
		if a.NArgs != "" {
			return fmt.Errorf("flag %q declares arity %q; arity applies to positionals only", a.name(), a.NArgs)
		}
		if a.Value == nil && a.Default != nil {
			if _, err := converterFor(a.Default); err != nil {
				return fmt.Errorf("flag %q: %w", a.name(), err)
			}
		}
	} else {
		if a.Required {
			return fmt.Errorf("positional %q declares Required; use arity instead", a.name())
		}
		if a.Type != nil && (a.NArgs == "*" || a.NArgs == "+") {
			return fmt.Errorf("positional %q: Type converters apply to single-value arity only", a.name())
		}
	}
	return nil
}

// sameOptions reports whether two declarations address the same argument: an identical positional
// name, or an identical set of flag spellings.
func (a Arg) sameOptions(b Arg) bool {
	if a.isFlag() != b.isFlag() {
		return false
	}
	if !a.isFlag() {
		return a.name() == b.name()
	}
	an, bn := a.flagNames(), b.flagNames()
	slices.Sort(an)
	slices.Sort(bn)
	return slices.Equal(an, bn)
}

// converterFor builds a string-to-value converter matching def's type. Named types with a
// supported underlying type convert through it.
func converterFor(def any) (func(string) (any, error), error) {
	if def == nil {
		return func(s string) (any, error) { return s, nil }, nil
	}
	t := reflect.TypeOf(def)
	if t == reflect.TypeOf(time.Duration(0)) {
		return func(s string) (any, error) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid duration %q", s)
			}
			return d, nil
		}, nil
	}
	conv := func(parse func(string) (any, error)) func(string) (any, error) {
		return func(s string) (any, error) {
			v, err := parse(s)
			if err != nil {
				return nil, err
			}
			return reflect.ValueOf(v).Convert(t).Interface(), nil
		}
	}
	switch t.Kind() {
	case reflect.String:
		return conv(func(s string) (any, error) { return s, nil }), nil
	case reflect.Bool:
		return conv(func(s string) (any, error) {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("invalid boolean %q", s)
			}
			return b, nil
		}), nil
	case reflect.Int, reflect.Int64:
		return conv(func(s string) (any, error) {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q", s)
			}
			if t.Kind() == reflect.Int {
				return int(n), nil
			}
			return n, nil
		}), nil
	case reflect.Uint:
		return conv(func(s string) (any, error) {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid unsigned integer %q", s)
			}
			return uint(n), nil
		}), nil
	case reflect.Float64:
		return conv(func(s string) (any, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", s)
			}
			return f, nil
		}), nil
	default:
		return nil, fmt.Errorf("default value type %s has no command-line form", t)
	}
}
