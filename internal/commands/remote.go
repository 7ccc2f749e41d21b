package commands

import (
	"context"
	"errors"
	"strings"

	"checklist/internal/config"
	"checklist/internal/service"
)

// resolveRemoteList picks the remote list named by flag, then by the
// remote_list setting, falling back to the default list. When create is true
// a missing named list is created.
func resolveRemoteList(ctx context.Context, cfg *config.Config, svc service.Service, flagName string, create bool) (service.TaskList, error) {
	name := strings.TrimSpace(flagName)
	if name == "" {
		name = strings.TrimSpace(cfg.Settings.RemoteList)
	}
	if name == "" {
		return svc.DefaultList(ctx)
	}

	list, err := svc.ResolveList(ctx, name)
	if create && errors.Is(err, service.ErrListNotFound) {
		return svc.CreateList(ctx, name)
	}
	return list, err
}
