// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"checklist/internal/config"
	"checklist/internal/service"
	"checklist/internal/tasklist"
)

// Env carries the collaborators a command runs against.
type Env struct {
	// Engine is the loaded checklist. Nil if NeedsList() returns false.
	Engine *tasklist.Engine

	// Remote is the task backend. Nil if NeedsAuth() returns false.
	Remote service.Service

	// Logger receives debug and warning output.
	Logger *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsList returns true if the command reads or changes the local checklist.
	NeedsList() bool

	// NeedsAuth returns true if the command talks to the remote backend.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}
