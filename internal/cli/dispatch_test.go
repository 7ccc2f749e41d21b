package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist/internal/cli"
	"checklist/internal/commands"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/service"
	"checklist/internal/store"
	"checklist/internal/tasklist"
	"checklist/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// fileStores opens the prefs-backed store the binary uses.
func fileStores(cfg *config.Config, logger *slog.Logger) (tasklist.Store, error) {
	return store.NewTaskStore(store.NewPrefs(cfg.TasksPath(), cfg.Format()), logger), nil
}

type harness struct {
	dir        string
	svc        *testutil.FakeService
	dispatcher *cli.Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvFormat, "")

	svc := testutil.NewFakeService()
	return &harness{
		dir:        t.TempDir(),
		svc:        svc,
		dispatcher: cli.NewDispatcher(commands.DefaultRegistry, fileStores, testFactory(svc)),
	}
}

// run dispatches args with --config pointing at the harness directory.
func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	if len(args) > 0 {
		args = append([]string{args[0], "--config", h.dir}, args[1:]...)
	}
	var outBuf, errBuf bytes.Buffer
	code = h.dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run("unknowncmd")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: unknowncmd\n", stderr)
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	h := newHarness(t)

	var stdout, stderr bytes.Buffer
	code := h.dispatcher.Run(context.Background(), []string{"--quiet", "list"}, &stdout, &stderr)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown command: --quiet\n", stderr.String())
}

func TestDispatcher_HelpCommand(t *testing.T) {
	h := newHarness(t)

	stdout, stderr, code := h.run("help")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
}

func TestDispatcher_VersionCommand(t *testing.T) {
	h := newHarness(t)

	stdout, _, code := h.run("version")

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "checklist 0.1.0\n", stdout)
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run("list", "--bogus")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unknown flag: -bogus\n", stderr)
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run("push", "--list")

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: flag needs an argument: -list\n", stderr)
}

func TestDispatcher_AddListRoundTrip(t *testing.T) {
	h := newHarness(t)

	for _, text := range []string{"Buy milk", "Buy eggs", "Call mom"} {
		stdout, stderr, code := h.run("add", text)
		require.Equal(t, exitcode.Success, code, stderr)
		require.Equal(t, "ok\n", stdout)
	}
	_, _, code := h.run("done", "3")
	require.Equal(t, exitcode.Success, code)
	_, _, code = h.run("move", "2", "1")
	require.Equal(t, exitcode.Success, code)

	stdout, stderr, code := h.run("list")
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "   1  [ ] Buy eggs\n   2  [ ] Buy milk\n------------\n   3  [x] Call mom\n", stdout)
	assert.FileExists(t, filepath.Join(h.dir, "tasks.json"))
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	h := newHarness(t)
	t.Setenv("XDG_CONFIG_HOME", h.dir)

	var stdout, stderr bytes.Buffer
	code := h.dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", stdout.String())
}

func TestDispatcher_YAMLFormatFromSettings(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, config.SettingsFile), []byte("format: yaml\n"), 0600))

	_, _, code := h.run("add", "Buy milk")
	require.Equal(t, exitcode.Success, code)

	assert.FileExists(t, filepath.Join(h.dir, "tasks.yaml"))
	assert.NoFileExists(t, filepath.Join(h.dir, "tasks.json"))
}

func TestDispatcher_WarnsAboutTaskFileInOtherFormat(t *testing.T) {
	h := newHarness(t)
	_, _, code := h.run("add", "Buy milk")
	require.Equal(t, exitcode.Success, code)

	t.Setenv(config.EnvFormat, "toml")
	stdout, stderr, code := h.run("list")

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", stdout)
	assert.Contains(t, stderr, "level=WARN")
	assert.Contains(t, stderr, "ignoring task file in another format")
	assert.Contains(t, stderr, filepath.Join(h.dir, "tasks.json"))
}

func TestDispatcher_NoWarningWithSingleTaskFile(t *testing.T) {
	h := newHarness(t)
	_, _, code := h.run("add", "Buy milk")
	require.Equal(t, exitcode.Success, code)

	_, stderr, code := h.run("list")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
}

func TestDispatcher_InvalidSettings(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, config.SettingsFile), []byte("format: xml\n"), 0600))

	_, stderr, code := h.run("list")

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, stderr, "error: invalid config.yaml")
}

func TestDispatcher_CorruptTasksFileListsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "tasks.json"), []byte("{not json"), 0600))

	stdout, stderr, code := h.run("list")

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", stdout)
	assert.Contains(t, stderr, "level=WARN")
}

func TestDispatcher_StoreFactoryError(t *testing.T) {
	h := newHarness(t)
	stores := func(cfg *config.Config, logger *slog.Logger) (tasklist.Store, error) {
		return nil, errors.New("no space left on device")
	}
	h.dispatcher = cli.NewDispatcher(commands.DefaultRegistry, stores, testFactory(h.svc))

	_, stderr, code := h.run("add", "x")

	assert.Equal(t, exitcode.StorageError, code)
	assert.Equal(t, "error: storage error: no space left on device\n", stderr)
}

func TestDispatcher_LoadErrorDoesNotOverwrite(t *testing.T) {
	h := newHarness(t)
	ms := testutil.NewMemoryStore([]tasklist.Task{{ID: 1, Text: "keep me"}}, 2)
	ms.LoadErr = errors.New("resource temporarily unavailable")
	stores := func(cfg *config.Config, logger *slog.Logger) (tasklist.Store, error) {
		return ms, nil
	}
	h.dispatcher = cli.NewDispatcher(commands.DefaultRegistry, stores, testFactory(h.svc))

	_, stderr, code := h.run("add", "x")

	assert.Equal(t, exitcode.StorageError, code)
	assert.Contains(t, stderr, "error: storage error: load task list: resource temporarily unavailable")
	assert.Zero(t, ms.Saves())
}

func TestDispatcher_QuietAdd(t *testing.T) {
	h := newHarness(t)

	stdout, stderr, code := h.run("add", "--quiet", "Buy milk")

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestDispatcher_DebugLogs(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run("add", "--debug", "Buy milk")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "command=add")
}

func TestDispatcher_PushThroughFactory(t *testing.T) {
	h := newHarness(t)
	_, _, code := h.run("add", "Buy milk")
	require.Equal(t, exitcode.Success, code)

	stdout, _, code := h.run("push", "--list", "Groceries")

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "pushed 1\n", stdout)
	require.Len(t, h.svc.Tasks("groceries"), 1)
}

func TestDispatcher_RemoteWithoutCredentials(t *testing.T) {
	h := newHarness(t)
	h.dispatcher = cli.NewDispatcher(commands.DefaultRegistry, fileStores, nil)

	_, stderr, code := h.run("push")
	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, fmt.Sprintf("error: oauth_client.json not found in %s\n", h.dir), stderr)

	require.NoError(t, os.WriteFile(filepath.Join(h.dir, config.OAuthClientFile), []byte("{}"), 0600))
	_, stderr, code = h.run("pull")
	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: not logged in (run: checklist login)\n", stderr)
}

func TestDispatcher_FactoryAuthError(t *testing.T) {
	h := newHarness(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, fmt.Errorf("%w: token expired", service.ErrAuth)
	}
	h.dispatcher = cli.NewDispatcher(commands.DefaultRegistry, fileStores, factory)

	_, stderr, code := h.run("lists")

	assert.Equal(t, exitcode.AuthError, code)
	assert.Equal(t, "error: auth error: token expired\n", stderr)
}

func TestDispatcher_FactoryBackendError(t *testing.T) {
	h := newHarness(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("connection refused")
	}
	h.dispatcher = cli.NewDispatcher(commands.DefaultRegistry, fileStores, factory)

	_, stderr, code := h.run("lists")

	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "error: backend error: connection refused\n", stderr)
}
