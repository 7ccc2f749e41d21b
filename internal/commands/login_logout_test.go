package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist/internal/commands"
	"checklist/internal/config"
	"checklist/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// runAuthCommand runs login or logout, which need neither a checklist nor a backend.
func runAuthCommand(ctx context.Context, cmd commands.Command, cfg *config.Config) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(ctx, cfg, &commands.Env{}, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LoginCmd{}, cfg)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, config.OAuthClientFile+" not found")
	assert.Contains(t, stderr, "checklist login")
}

func TestLoginCommand_RetriesWithUnusableToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "no refresh token", token: `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`},
		{name: "corrupt token", token: `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfigFile(t, dir, config.OAuthClientFile, testOAuthClient)
			writeConfigFile(t, dir, config.TokenFile, tt.token)

			// Cancelled so the flow stops instead of waiting for the browser.
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, _, code := runAuthCommand(ctx, &commands.LoginCmd{}, &config.Config{Dir: dir})

			assert.NotEqual(t, "already logged in\n", stdout)
			assert.Equal(t, exitcode.AuthError, code)
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := t.TempDir()
	oauthPath := writeConfigFile(t, dir, config.OAuthClientFile, testOAuthClient)
	tokenPath := writeConfigFile(t, dir, config.TokenFile, `{"access_token":"test","refresh_token":"test"}`)
	tasksPath := writeConfigFile(t, dir, "tasks.json", `{}`)

	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, &config.Config{Dir: dir})

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.NoFileExists(t, tokenPath)
	assert.FileExists(t, oauthPath)
	assert.FileExists(t, tasksPath)
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, &config.Config{Dir: t.TempDir()})

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "not logged in\n", stdout)
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}

	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, cfg)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Empty(t, stdout)
}
