package commands

import (
	"context"
	"flag"
	"io"

	"checklist/internal/config"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"check"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "checklist done <ref>" }
func (c *DoneCmd) NeedsList() bool   { return true }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, env, args, true, out, errOut)
}

// UndoCmd implements the undo command, the inverse of done.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"reopen", "uncheck"} }
func (c *UndoCmd) Synopsis() string  { return "Mark a task not completed" }
func (c *UndoCmd) Usage() string     { return "checklist undo <ref>" }
func (c *UndoCmd) NeedsList() bool   { return true }
func (c *UndoCmd) NeedsAuth() bool   { return false }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, env, args, false, out, errOut)
}

// runToggle is the shared implementation for done and undo.
func runToggle(ctx context.Context, cfg *config.Config, env *Env, args []string, completed bool, out, errOut io.Writer) int {
	task, _, err := lookupTask(env.Engine, args)
	if err != nil {
		return reportTaskRefError(err, errOut)
	}

	return reportMutation(cfg, env.Engine.Toggle(ctx, task.ID, completed), out, errOut)
}
