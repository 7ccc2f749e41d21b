package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"checklist/internal/config"
	"checklist/internal/exitcode"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command.
// Positions are 1-based within the incomplete tasks and clamped to them.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move an open task to a new position" }
func (c *MoveCmd) Usage() string     { return "checklist move <ref> <position>" }
func (c *MoveCmd) NeedsList() bool   { return true }
func (c *MoveCmd) NeedsAuth() bool   { return false }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	task, rest, err := lookupTask(env.Engine, args)
	if err != nil {
		return reportTaskRefError(err, errOut)
	}

	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: position required")
		return exitcode.UserError
	}
	if len(rest) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[1])
		return exitcode.UserError
	}
	pos, err := strconv.Atoi(rest[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid position: %s\n", rest[0])
		return exitcode.UserError
	}

	return reportMutation(cfg, env.Engine.Reorder(ctx, task.ID, pos-1), out, errOut)
}
