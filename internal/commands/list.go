package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `checklist` (no args) and `checklist list`.
type ListCmd struct {
	json    bool
	showIDs bool
}

// SetJSON selects JSON output (for testing).
func (c *ListCmd) SetJSON(v bool) {
	c.json = v
}

// SetShowIDs appends task ids to text output (for testing).
func (c *ListCmd) SetShowIDs(v bool) {
	c.showIDs = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "checklist list [--json] [--ids]" }
func (c *ListCmd) NeedsList() bool   { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "")
	fs.BoolVar(&c.showIDs, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	incomplete, completed := env.Engine.Partitions()

	if c.json {
		if err := output.WriteJSON(out, incomplete, completed, env.Engine.NextID()); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	if len(incomplete)+len(completed) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatList(out, incomplete, completed, c.showIDs)
	return exitcode.Success
}
