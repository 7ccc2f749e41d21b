package commands

import (
	"context"
	"flag"
	"io"

	"checklist/internal/config"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "checklist rm <ref>" }
func (c *RmCmd) NeedsList() bool   { return true }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	task, _, err := lookupTask(env.Engine, args)
	if err != nil {
		return reportTaskRefError(err, errOut)
	}

	return reportMutation(cfg, env.Engine.Delete(ctx, task.ID), out, errOut)
}
