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
	Register(&PullCmd{})
}

// PullCmd adds open remote tasks to the local checklist in remote order.
// Titles that already match an open local task are skipped.
type PullCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PullCmd) SetListName(name string) {
	c.listName = name
}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Add open tasks from Google Tasks" }
func (c *PullCmd) Usage() string     { return "checklist pull [--list <list-name>]" }
func (c *PullCmd) NeedsList() bool   { return true }
func (c *PullCmd) NeedsAuth() bool   { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PullCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, err := resolveRemoteList(ctx, cfg, env.Remote, c.listName, false)
	if err != nil {
		return reportRemoteError(err, errOut)
	}

	remote, err := env.Remote.ListTasks(ctx, list.ID, false)
	if err != nil {
		return reportRemoteError(err, errOut)
	}

	incomplete, _ := env.Engine.Partitions()
	have := make(map[string]bool, len(incomplete))
	for _, t := range incomplete {
		have[t.Text] = true
	}

	pulled := 0
	for _, t := range remote {
		if t.Title == "" || have[t.Title] {
			continue
		}
		if _, err := env.Engine.Add(ctx, t.Title); err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.StorageError
		}
		have[t.Title] = true
		pulled++
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pulled %d\n", pulled)
	}
	return exitcode.Success
}
