package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/service"
	"checklist/internal/tasklist"
)

func init() {
	Register(&PushCmd{})
}

// remoteKey identifies a task on the remote side for dedupe.
type remoteKey struct {
	title     string
	completed bool
}

// PushCmd copies local tasks to a remote list.
// Tasks whose text and status already match a remote task are skipped.
type PushCmd struct {
	listName string
	all      bool
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetAll includes completed tasks (for testing).
func (c *PushCmd) SetAll(v bool) {
	c.all = v
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "checklist push [--list <list-name>] [--all]" }
func (c *PushCmd) NeedsList() bool   { return true }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, err := resolveRemoteList(ctx, cfg, env.Remote, c.listName, true)
	if err != nil {
		return reportRemoteError(err, errOut)
	}

	remote, err := env.Remote.ListTasks(ctx, list.ID, c.all)
	if err != nil {
		return reportRemoteError(err, errOut)
	}

	// A local task is already present when a remote task has the same
	// title and the same status.
	present := make(map[remoteKey]bool, len(remote))
	for _, t := range remote {
		present[remoteKey{title: t.Title, completed: t.Status == service.StatusCompleted}] = true
	}

	incomplete, completed := env.Engine.Partitions()
	candidates := incomplete
	if c.all {
		candidates = append(candidates, completed...)
	}

	var pending []tasklist.Task
	for _, t := range candidates {
		key := remoteKey{title: t.Text, completed: t.Completed}
		if present[key] {
			continue
		}
		present[key] = true
		pending = append(pending, t)
	}

	// The backend inserts at the top, so walk backwards to keep local order.
	for i := len(pending) - 1; i >= 0; i-- {
		t := pending[i]
		if err := env.Remote.CreateTask(ctx, list.ID, t.Text, t.Completed); err != nil {
			return reportRemoteError(err, errOut)
		}
		env.Logger.Debug("pushed task", slog.Int("id", t.ID), slog.String("list", list.Title))
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d\n", len(pending))
	}
	return exitcode.Success
}
