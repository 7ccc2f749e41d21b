package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checklist/internal/config"
	"checklist/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "checklist help" }
func (c *HelpCmd) NeedsList() bool   { return false }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  checklist                                   List all tasks
  checklist list [common flags] [--json] [--ids]
  checklist add [common flags] <text...>
  checklist edit [common flags] <ref> <text...>
  checklist done [common flags] <ref>
  checklist undo [common flags] <ref>
  checklist move [common flags] <ref> <position>
  checklist rm [common flags] <ref>
  checklist push [common flags] [--list <list-name>] [--all]
  checklist pull [common flags] [--list <list-name>]
  checklist lists [common flags]
  checklist login [common flags]
  checklist logout [common flags]
  checklist help
  checklist version

Task references:
  <n>     task number as printed by list (open tasks first)
  #<id>   task id as printed by list --ids

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
