package funcli

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferArgs(t *testing.T) {
	t.Parallel()

	t.Run("positionals in field order", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Source string
			Dest   string
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 2)
		assert.Equal(t, "source", args[0].Positional)
		assert.Equal(t, "dest", args[1].Positional)
		assert.Empty(t, args[0].Flags)
		assert.Empty(t, args[0].NArgs)
	})
	t.Run("bool becomes a toggle flag", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Text  string
			Twice bool `help:"repeat twice"`
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 2)
		assert.Equal(t, []string{"--twice"}, args[1].Flags)
		assert.Equal(t, false, args[1].Default)
		assert.Equal(t, "repeat twice", args[1].Help)
	})
	t.Run("bool default true", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Cache bool `default:"true"`
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.Equal(t, true, args[0].Default)
	})
	t.Run("default tag makes a flag", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Name    string        `default:"world"`
			Count   int           `default:"3"`
			Timeout time.Duration `default:"5s"`
			Ratio   float64       `default:"0.5"`
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 4)
		assert.Equal(t, []string{"--name"}, args[0].Flags)
		assert.Equal(t, "world", args[0].Default)
		assert.Equal(t, 3, args[1].Default)
		assert.Equal(t, 5*time.Second, args[2].Default)
		assert.Equal(t, 0.5, args[3].Default)
	})
	t.Run("flag tag forces a flag with zero default", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Output string `flag:"out" short:"o"`
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.Equal(t, []string{"--out", "-o"}, args[0].Flags)
		assert.Equal(t, "", args[0].Default)
	})
	t.Run("camel case field names hyphenate", func(t *testing.T) {
		t.Parallel()
		type params struct {
			DryRun bool
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.Equal(t, []string{"--dry-run"}, args[0].Flags)
	})
	t.Run("string slice is the catch-all positional", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Items []string
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.Equal(t, "items", args[0].Positional)
		assert.Equal(t, "*", args[0].NArgs)
	})
	t.Run("typed positional carries a converter", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Count int
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 1)
		require.NotNil(t, args[0].Type)
		v, err := args[0].Type("42")
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		_, err = args[0].Type("nope")
		require.Error(t, err)
	})
	t.Run("choices and required tags", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Mode string `default:"fast" choices:"fast,slow"`
			Out  string `flag:"out" required:"true"`
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		require.Len(t, args, 2)
		assert.Equal(t, []string{"fast", "slow"}, args[0].Choices)
		assert.True(t, args[1].Required)
	})
	t.Run("unexported fields are skipped", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Text   string
			hidden int
		}
		args, err := inferArgs(reflect.TypeFor[params]())
		require.NoError(t, err)
		assert.Len(t, args, 1)
	})
	t.Run("map fields are rejected", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Extra map[string]string
		}
		_, err := inferArgs(reflect.TypeFor[params]())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command-line form")
	})
	t.Run("non struct params are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := inferArgs(reflect.TypeFor[int]())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a struct")
	})
	t.Run("bad default tag", func(t *testing.T) {
		t.Parallel()
		type params struct {
			Count int `default:"many"`
		}
		_, err := inferArgs(reflect.TypeFor[params]())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid default")
	})
}

func TestFillParams(t *testing.T) {
	t.Parallel()

	type params struct {
		Text    string
		Count   int `default:"1"`
		Loud    bool
		Items   []string
		Timeout time.Duration `default:"1s"`
	}
	s := &State{
		values: map[string]any{
			"text":  "hi",
			"items": []string{"a", "b"},
		},
	}
	// Flag-backed values are looked up through the flag set; simulate bound values directly to
	// keep this test focused on assignment.
	s.values["count"] = 7
	s.values["loud"] = true
	s.values["timeout"] = 2 * time.Second

	var p params
	require.NoError(t, fillParams(&p, s))
	assert.Equal(t, "hi", p.Text)
	assert.Equal(t, 7, p.Count)
	assert.True(t, p.Loud)
	assert.Equal(t, []string{"a", "b"}, p.Items)
	assert.Equal(t, 2*time.Second, p.Timeout)
}

func TestFillParamsMissingValues(t *testing.T) {
	t.Parallel()

	type params struct {
		Text string
	}
	var p params
	require.NoError(t, fillParams(&p, &State{values: map[string]any{}}))
	assert.Equal(t, "", p.Text)
}
