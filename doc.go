// Package funcli derives command-line interfaces from plain Go functions. Commands are registered
// on an [App], optionally grouped into single-level namespaces, and dispatched with [App.Dispatch].
//
// A command's arguments come from two sources that are merged at registration time: declarations
// inferred from a typed params struct (for commands built with [Typed]) and explicit [Arg]
// declarations, with explicit ones taking precedence. The package builds on the standard flag
// package for token parsing; it adds positional binding, namespaces, aliases, a reserved "help"
// command, shell completion candidates, and uniform result/error reporting, so applications can
// expose ordinary functions without hand-building a parser tree.
package funcli
