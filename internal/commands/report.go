package commands

import (
	"errors"
	"fmt"
	"io"

	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/service"
	"checklist/internal/tasklist"
)

// reportMutation prints the outcome of an engine mutation and returns the exit code.
func reportMutation(cfg *config.Config, err error, out, errOut io.Writer) int {
	if err == nil {
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}
	if tasklist.IsNoop(err) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

// reportTaskRefError prints a task reference parse or lookup failure.
func reportTaskRefError(err error, errOut io.Writer) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// reportRemoteError prints a remote backend failure and returns the exit code.
func reportRemoteError(err error, errOut io.Writer) int {
	switch {
	case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrAuth):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
