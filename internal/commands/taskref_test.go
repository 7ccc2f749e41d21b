package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist/internal/tasklist"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     TaskRef
		wantRest []string
		wantErr  string
	}{
		{name: "number", args: []string{"5"}, want: TaskRef{Num: 5}, wantRest: []string{}},
		{name: "number with rest", args: []string{"12", "new", "text"}, want: TaskRef{Num: 12}, wantRest: []string{"new", "text"}},
		{name: "id", args: []string{"#7"}, want: TaskRef{ID: 7, ByID: true}, wantRest: []string{}},
		{name: "id zero", args: []string{"#0"}, want: TaskRef{ID: 0, ByID: true}, wantRest: []string{}},
		{name: "no args", wantErr: "task reference required"},
		{name: "letter", args: []string{"a1"}, wantErr: "invalid task reference: a1"},
		{name: "bare hash", args: []string{"#"}, wantErr: "invalid task reference: #"},
		{name: "negative", args: []string{"-1"}, wantErr: "invalid task reference: -1"},
		{name: "hash letters", args: []string{"#ab"}, wantErr: "invalid task reference: #ab"},
		{name: "overflow", args: []string{"99999999999999999999"}, wantErr: "invalid task reference: 99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, rest, err := ParseTaskRef(tt.args)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseTaskRef_NoArgsSentinel(t *testing.T) {
	_, _, err := ParseTaskRef(nil)
	assert.ErrorIs(t, err, ErrTaskRefRequired)
}

func TestTaskRefString(t *testing.T) {
	assert.Equal(t, "3", TaskRef{Num: 3}.String())
	assert.Equal(t, "#3", TaskRef{ID: 3, ByID: true}.String())
}

func TestResolveTaskRef(t *testing.T) {
	tasks := []tasklist.Task{
		{ID: 4, Text: "A"},
		{ID: 1, Text: "B"},
		{ID: 9, Text: "C", Completed: true},
	}

	tests := []struct {
		name    string
		ref     TaskRef
		wantID  int
		wantErr string
	}{
		{name: "first number", ref: TaskRef{Num: 1}, wantID: 4},
		{name: "completed number", ref: TaskRef{Num: 3}, wantID: 9},
		{name: "by id", ref: TaskRef{ID: 1, ByID: true}, wantID: 1},
		{name: "zero number", ref: TaskRef{Num: 0}, wantErr: "task number out of range: 0"},
		{name: "past end", ref: TaskRef{Num: 4}, wantErr: "task number out of range: 4"},
		{name: "unknown id", ref: TaskRef{ID: 2, ByID: true}, wantErr: "task not found: #2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := ResolveTaskRef(tasks, tt.ref)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, task.ID)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&AddCmd{}))

	cmd, ok := r.Find("create")
	require.True(t, ok)
	assert.Equal(t, "add", cmd.Name())

	err := r.Register(&AddCmd{})
	assert.EqualError(t, err, "command already registered: add")
}

func TestDefaultRegistry_AllCommands(t *testing.T) {
	for _, name := range []string{"list", "add", "edit", "done", "undo", "move", "rm", "push", "pull", "lists", "login", "logout", "help", "version"} {
		_, ok := DefaultRegistry.Find(name)
		assert.True(t, ok, "command %s not registered", name)
	}
}
