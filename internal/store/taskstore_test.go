package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist/internal/tasklist"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTaskStore(t *testing.T, format Format) (*TaskStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks."+format.Ext())
	return NewTaskStore(NewPrefs(path, format), discardLogger()), path
}

func TestTaskStore_RoundTrip(t *testing.T) {
	want := tasklist.State{
		Tasks: []tasklist.Task{
			{ID: 3, Text: "buy milk"},
			{ID: 0, Text: "call \"mom\"\nafter work"},
			{ID: 7, Text: "pay rent", Completed: true},
		},
		NextID: 8,
	}

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			s, path := newTaskStore(t, format)

			require.NoError(t, s.Save(ctx, want))

			got, err := NewTaskStore(NewPrefs(path, format), discardLogger()).Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestTaskStore_MissingFile(t *testing.T) {
	s, _ := newTaskStore(t, FormatJSON)

	got, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
	assert.Equal(t, 0, got.NextID)
}

func TestTaskStore_CorruptFileIsEmpty(t *testing.T) {
	s, path := newTaskStore(t, FormatJSON)
	require.NoError(t, os.WriteFile(path, []byte("\x00garbage"), 0600))

	got, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, tasklist.State{}, got)
}

func TestTaskStore_MalformedTaskListResetsCounter(t *testing.T) {
	ctx := context.Background()
	s, path := newTaskStore(t, FormatJSON)
	err := NewPrefs(path, FormatJSON).Edit().
		PutString(KeyTaskList, `[{"id": "one"}`).
		PutInt(KeyNextID, 12).
		Commit(ctx)
	require.NoError(t, err)

	got, err := s.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, tasklist.State{}, got)
}

func TestTaskStore_SaveEmptyList(t *testing.T) {
	ctx := context.Background()
	s, path := newTaskStore(t, FormatJSON)

	require.NoError(t, s.Save(ctx, tasklist.State{NextID: 5}))

	v, err := NewPrefs(path, FormatJSON).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", v.String(KeyTaskList, ""))
	assert.Equal(t, int64(5), v.Int(KeyNextID, 0))
}

func TestTaskStore_EngineIntegration(t *testing.T) {
	ctx := context.Background()
	s, path := newTaskStore(t, FormatYAML)

	e, err := tasklist.Open(ctx, s, tasklist.WithLogger(discardLogger()))
	require.NoError(t, err)
	a, err := e.Add(ctx, "A")
	require.NoError(t, err)
	_, err = e.Add(ctx, "B")
	require.NoError(t, err)
	require.NoError(t, e.Toggle(ctx, a.ID, true))

	reopened, err := tasklist.Open(ctx, NewTaskStore(NewPrefs(path, FormatYAML), discardLogger()))
	require.NoError(t, err)
	assert.Equal(t, e.Snapshot(), reopened.Snapshot())
	assert.Equal(t, 2, reopened.NextID())
}
