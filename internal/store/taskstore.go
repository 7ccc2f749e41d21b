package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"checklist/internal/tasklist"
)

// Preference keys holding the task list.
const (
	KeyTaskList = "taskList"
	KeyNextID   = "nextId"
)

// TaskStore implements tasklist.Store on a preferences file. The ordered tasks
// are kept as a JSON array under KeyTaskList and the id counter under KeyNextID.
type TaskStore struct {
	prefs  *Prefs
	logger *slog.Logger
}

// NewTaskStore returns a TaskStore backed by prefs.
func NewTaskStore(prefs *Prefs, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{prefs: prefs, logger: logger}
}

// Load returns the saved list. Missing keys and malformed content yield an
// empty list with a zero counter and no error; only I/O and locking failures
// are returned.
func (s *TaskStore) Load(ctx context.Context) (tasklist.State, error) {
	v, err := s.prefs.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			s.logger.Warn("preferences file unreadable, starting empty", slog.String("path", s.prefs.Path()), slog.Any("error", err))
			return tasklist.State{}, nil
		}
		return tasklist.State{}, err
	}

	raw := v.String(KeyTaskList, "[]")
	var tasks []tasklist.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn("stored task list malformed, starting empty", slog.String("path", s.prefs.Path()), slog.Any("error", err))
		return tasklist.State{}, nil
	}

	return tasklist.State{
		Tasks:  tasks,
		NextID: int(v.Int(KeyNextID, 0)),
	}, nil
}

// Save writes the list and counter in a single atomic commit.
func (s *TaskStore) Save(ctx context.Context, st tasklist.State) error {
	tasks := st.Tasks
	if tasks == nil {
		tasks = []tasklist.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode task list: %w", err)
	}

	return s.prefs.Edit().
		PutString(KeyTaskList, string(data)).
		PutInt(KeyNextID, int64(st.NextID)).
		Commit(ctx)
}
