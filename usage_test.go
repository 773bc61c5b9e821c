package funcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootUsage(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.ShortHelp = "a tiny program for exercising help output"

	out, err := app.usage(nil)
	require.NoError(t, err)

	assert.Contains(t, out, "a tiny program for exercising help output\n")
	assert.Contains(t, out, "Usage:\n  prog <command> [flags] [arguments]\n")
	assert.Contains(t, out, "Available Commands:\n")
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "repeat the given text back")
	// namespaces list their members inline
	assert.Contains(t, out, "greet")
	assert.Contains(t, out, "commands: hello, howdy")
	// aliases never show up as their own entries at the root
	assert.NotContains(t, out, "aliased,")
	assert.Contains(t, out, `Use "prog help [command]" for more information about a command.`)
}

func TestNamespaceUsage(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	out, err := app.usage([]string{"greet"})
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:\n  prog greet <command> [flags] [arguments]\n")
	assert.Contains(t, out, "Available Commands:\n")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "howdy")
	assert.Contains(t, out, `Use "prog help greet [command]" for more information about a command.`)
}

func TestCommandUsage(t *testing.T) {
	t.Parallel()

	t.Run("positionals and flags", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		out, err := app.usage([]string{"echo"})
		require.NoError(t, err)

		assert.Contains(t, out, "repeat the given text back\n")
		assert.Contains(t, out, "Usage:\n  prog echo [flags] <text>\n")
		assert.Contains(t, out, "Arguments:\n  <text>\n")
		assert.Contains(t, out, "Flags:\n")
		assert.Contains(t, out, "--twice")
		assert.Contains(t, out, "repeat twice")
	})

	t.Run("aliases section", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		out, err := app.usage([]string{"do-aliased"})
		require.NoError(t, err)

		assert.Contains(t, out, "Aliases:\n  aliased\n")
	})

	t.Run("namespaced command", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		out, err := app.usage([]string{"greet", "howdy"})
		require.NoError(t, err)

		assert.Contains(t, out, "Usage:\n  prog greet howdy <buddy>\n")
	})

	t.Run("defaults and required are annotated", func(t *testing.T) {
		t.Parallel()

		app := New("prog")
		require.NoError(t, app.Add(&Command{
			Name: "push",
			Args: []Arg{
				{Flags: []string{"--remote"}, Default: "origin", Help: "remote name"},
				{Flags: []string{"--tag"}, Required: true, Help: "tag to push"},
			},
			Exec: nopExec,
		}))

		out, err := app.usage([]string{"push"})
		require.NoError(t, err)

		assert.Contains(t, out, "remote name (default origin)")
		assert.Contains(t, out, "tag to push (required)")
	})

	t.Run("choices are annotated", func(t *testing.T) {
		t.Parallel()

		app := New("prog")
		require.NoError(t, app.Add(&Command{
			Name: "set-level",
			Args: []Arg{
				{Positional: "level", Choices: []string{"debug", "info", "warn"}},
			},
			Exec: nopExec,
		}))

		out, err := app.usage([]string{"set-level"})
		require.NoError(t, err)

		assert.Contains(t, out, "<level>")
		assert.Contains(t, out, "(one of: debug, info, warn)")
	})

	t.Run("arity shapes the usage line", func(t *testing.T) {
		t.Parallel()

		app := New("prog")
		require.NoError(t, app.Add(&Command{
			Name: "cat",
			Args: []Arg{
				{Positional: "first"},
				{Positional: "second", NArgs: "?"},
				{Positional: "rest", NArgs: "*"},
			},
			Exec: nopExec,
		}))

		out, err := app.usage([]string{"cat"})
		require.NoError(t, err)

		assert.Contains(t, out, "Usage:\n  prog cat <first> [second] [rest...]\n")
	})
}

func TestUsageUnknownTopic(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	for _, path := range [][]string{
		{"nope"},
		{"greet", "nope"},
		{"greet", "hello", "extra"},
	} {
		_, err := app.usage(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown help topic")
	}
}

func TestUsageReachableByAlias(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	out, err := app.usage([]string{"aliased"})
	require.NoError(t, err)
	// The usage line shows the canonical name even when help is reached through an alias.
	assert.Contains(t, out, "Usage:\n  prog do-aliased\n")
	assert.NotContains(t, out, "prog aliased")
	assert.Contains(t, out, "Aliases:\n  aliased\n")
}
