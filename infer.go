package funcli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mfridman/funcli/pkg/textutil"
)

// Struct tags recognized on params struct fields. The schema follows the common ecosystem
// convention: `flag:"name"` forces a flag and overrides its name, `default:"..."` supplies a flag
// default, `short:"x"` adds a one-letter spelling, plus `help:"..."`, `choices:"a,b"` and
// `required:"true"`.
const (
	tagFlag     = "flag"
	tagShort    = "short"
	tagDefault  = "default"
	tagHelp     = "help"
	tagChoices  = "choices"
	tagRequired = "required"
)

// inferArgs derives argument declarations from the exported fields of a params struct, in field
// order. A field becomes a required positional unless it is a bool, carries a default, or is
// forced to a flag by its tag; a []string field becomes the catch-all positional.
func inferArgs(t reflect.Type) ([]Arg, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("params type %s is not a struct", t)
	}
	var args []Arg
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		a, err := inferField(field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		args = append(args, a)
	}
	return args, nil
}

func inferField(field reflect.StructField) (Arg, error) {
	name := field.Tag.Get(tagFlag)
	forceFlag := name != ""
	if name == "" {
		name = textutil.Kebab(field.Name)
	}

	a := Arg{Help: field.Tag.Get(tagHelp)}
	if cs := field.Tag.Get(tagChoices); cs != "" {
		a.Choices = strings.Split(cs, ",")
	}
	if r := field.Tag.Get(tagRequired); r != "" {
		req, err := strconv.ParseBool(r)
		if err != nil {
			return Arg{}, fmt.Errorf("invalid required tag %q", r)
		}
		a.Required = req
	}

	defTag, hasDefault := field.Tag.Lookup(tagDefault)
	ft := field.Type

	switch ft.Kind() {
	case reflect.Bool:
		def := false
		if hasDefault {
			v, err := strconv.ParseBool(defTag)
			if err != nil {
				return Arg{}, fmt.Errorf("invalid default %q", defTag)
			}
			def = v
		}
		a.Flags = flagSpellings(name, field.Tag.Get(tagShort))
		a.Default = def
		return a, nil

	case reflect.Slice:
		if ft.Elem().Kind() != reflect.String {
			return Arg{}, fmt.Errorf("unsupported slice type %s", ft)
		}
		if forceFlag || hasDefault {
			return Arg{}, fmt.Errorf("a string slice is the catch-all positional and cannot be a flag")
		}
		a.Positional = name
		a.NArgs = "*"
		return a, nil

	case reflect.Map:
		// The keyword catch-all of other languages; there is nothing to map it onto.
		return Arg{}, fmt.Errorf("map fields have no command-line form")

	case reflect.String, reflect.Int, reflect.Int64, reflect.Uint, reflect.Float64:
		if !forceFlag && !hasDefault {
			a.Positional = name
			a.Type = fieldConverter(ft)
			return a, nil
		}
		def, err := parseDefault(ft, defTag)
		if err != nil {
			return Arg{}, err
		}
		a.Flags = flagSpellings(name, field.Tag.Get(tagShort))
		a.Default = def
		return a, nil

	default:
		return Arg{}, fmt.Errorf("unsupported type %s", ft)
	}
}

func flagSpellings(name, short string) []string {
	spellings := []string{"--" + name}
	if short != "" {
		spellings = append(spellings, "-"+short)
	}
	return spellings
}

// parseDefault converts a default tag (possibly empty) into a value of the field's type.
func parseDefault(t reflect.Type, tag string) (any, error) {
	zero := reflect.Zero(t).Interface()
	if tag == "" {
		return zero, nil
	}
	convert, err := converterFor(zero)
	if err != nil {
		return nil, err
	}
	v, err := convert(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid default %q: %w", tag, err)
	}
	return v, nil
}

// fieldConverter types a positional's raw token to the field's type.
func fieldConverter(t reflect.Type) func(string) (any, error) {
	if t.Kind() == reflect.String && t == reflect.TypeOf("") {
		return nil // plain strings need no conversion
	}
	convert, err := converterFor(reflect.Zero(t).Interface())
	if err != nil {
		return nil
	}
	return convert
}

// fillParams copies parsed values into the fields of p, a pointer to a params struct, using the
// same naming rules as inference. Absent optional values leave the field at its zero value.
func fillParams(p any, s *State) error {
	v := reflect.ValueOf(p).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get(tagFlag)
		if name == "" {
			name = textutil.Kebab(field.Name)
		}
		raw, ok := s.lookup(name)
		if !ok || raw == nil {
			continue
		}
		rv := reflect.ValueOf(raw)
		fv := v.Field(i)
		switch {
		case rv.Type().AssignableTo(fv.Type()):
			fv.Set(rv)
		case rv.Type().ConvertibleTo(fv.Type()) && compatibleKinds(rv.Type(), fv.Type()):
			fv.Set(rv.Convert(fv.Type()))
		default:
			return fmt.Errorf("argument %q: cannot assign %T to field %s %s", name, raw, field.Name, fv.Type())
		}
	}
	return nil
}

// compatibleKinds guards reflect conversions that change representation, like int to string.
func compatibleKinds(from, to reflect.Type) bool {
	if from.Kind() == to.Kind() {
		return true
	}
	isInt := func(k reflect.Kind) bool {
		switch k {
		case reflect.Int, reflect.Int64, reflect.Uint:
			return true
		}
		return false
	}
	return isInt(from.Kind()) && isInt(to.Kind())
}
