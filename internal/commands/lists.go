package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"checklist/internal/config"
	"checklist/internal/exitcode"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd prints the remote lists available to push and pull.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "checklist lists [common flags]" }
func (c *ListsCmd) NeedsList() bool   { return false }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Remote.ListLists(ctx)
	if err != nil {
		return reportRemoteError(err, errOut)
	}

	for _, list := range lists {
		title := list.Title
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		if list.IsDefault {
			title += " [default]"
		}
		fmt.Fprintln(out, title)
	}
	return exitcode.Success
}
