package tasklist

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Engine owns an ordered task list and enforces the completion partition.
type Engine struct {
	mu     sync.Mutex
	tasks  []Task
	nextID int
	store  Store
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug traces and persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine from existing state.
// The state is normalized: incomplete tasks are moved ahead of completed ones
// (keeping relative order), duplicate ids are dropped and the id counter is
// raised past the highest id in use. A nil store disables persistence.
func New(s State, store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	var repaired bool
	e.tasks, e.nextID, repaired = normalize(s)
	if repaired {
		e.logger.Warn("task list state repaired", slog.Int("tasks", len(e.tasks)), slog.Int("next_id", e.nextID))
	}
	return e
}

// Open loads state from store and creates an engine from it.
// The returned engine is always usable: when Load fails it starts empty and
// the error is returned alongside it so callers that must not overwrite
// unreadable data can stop before mutating.
func Open(ctx context.Context, store Store, opts ...Option) (*Engine, error) {
	e := New(State{}, store, opts...)
	if store == nil {
		return e, nil
	}
	s, err := store.Load(ctx)
	if err != nil {
		e.logger.Warn("load task list failed, starting empty", slog.Any("error", err))
		return e, fmt.Errorf("load task list: %w", err)
	}
	var repaired bool
	e.tasks, e.nextID, repaired = normalize(s)
	if repaired {
		e.logger.Warn("task list state repaired", slog.Int("tasks", len(e.tasks)), slog.Int("next_id", e.nextID))
	}
	e.logger.Debug("task list loaded", slog.Int("tasks", len(e.tasks)), slog.Int("next_id", e.nextID))
	return e, nil
}

// Add appends a new incomplete task at the end of the incomplete partition.
func (e *Engine) Add(ctx context.Context, text string) (Task, error) {
	if text == "" {
		return Task{}, ErrEmptyText
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t := Task{ID: e.nextID, Text: text}
	e.tasks = slices.Insert(e.tasks, e.boundaryLocked(), t)
	e.nextID++

	return t, e.saveLocked(ctx, "add", t.ID)
}

// Edit replaces the text of a task without moving it.
func (e *Engine) Edit(ctx context.Context, id int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	e.tasks[i].Text = text

	return e.saveLocked(ctx, "edit", id)
}

// Delete removes a task wherever it sits.
func (e *Engine) Delete(ctx context.Context, id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	e.tasks = slices.Delete(e.tasks, i, i+1)

	return e.saveLocked(ctx, "delete", id)
}

// Toggle sets the completion status of a task and moves it to the top of its
// new partition: a completed task goes just before the first completed task
// (or to the end), a reopened task goes to index 0.
func (e *Engine) Toggle(ctx context.Context, id int, completed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	t := e.tasks[i]
	t.Completed = completed
	e.tasks = slices.Delete(e.tasks, i, i+1)

	at := 0
	if completed {
		at = e.boundaryLocked()
	}
	e.tasks = slices.Insert(e.tasks, at, t)

	return e.saveLocked(ctx, "toggle", id)
}

// Reorder moves an incomplete task to position within the incomplete
// partition. Position is zero-based and clamped to the partition; the
// completed partition is never reachable.
func (e *Engine) Reorder(ctx context.Context, id int, position int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	t := e.tasks[i]
	if t.Completed {
		return ErrCompleted
	}

	position = max(0, min(position, e.boundaryLocked()-1))
	e.tasks = slices.Delete(e.tasks, i, i+1)

	// The incomplete partition is a prefix, so the task holding position p
	// within it sits at absolute index p.
	at := min(position, e.boundaryLocked())
	e.tasks = slices.Insert(e.tasks, at, t)

	return e.saveLocked(ctx, "reorder", id)
}

// Snapshot returns a copy of the ordered task list.
func (e *Engine) Snapshot() []Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

// Partitions returns copies of the incomplete and completed partitions.
func (e *Engine) Partitions() (incomplete, completed []Task) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.boundaryLocked()
	incomplete = make([]Task, b)
	copy(incomplete, e.tasks[:b])
	completed = make([]Task, len(e.tasks)-b)
	copy(completed, e.tasks[b:])
	return incomplete, completed
}

// Get returns the task with the given id.
func (e *Engine) Get(id int) (Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return Task{}, false
	}
	return e.tasks[i], true
}

// NextID returns the id the next added task will receive.
func (e *Engine) NextID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextID
}

// Len returns the number of tasks.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

func (e *Engine) indexLocked(id int) int {
	return slices.IndexFunc(e.tasks, func(t Task) bool { return t.ID == id })
}

// boundaryLocked returns the index of the first completed task, or len(tasks).
func (e *Engine) boundaryLocked() int {
	if i := slices.IndexFunc(e.tasks, func(t Task) bool { return t.Completed }); i >= 0 {
		return i
	}
	return len(e.tasks)
}

func (e *Engine) saveLocked(ctx context.Context, op string, id int) error {
	e.logger.Debug("task list mutated", slog.String("op", op), slog.Int("id", id), slog.Int("tasks", len(e.tasks)))
	if e.store == nil {
		return nil
	}

	s := State{
		Tasks:  make([]Task, len(e.tasks)),
		NextID: e.nextID,
	}
	copy(s.Tasks, e.tasks)

	if err := e.store.Save(ctx, s); err != nil {
		e.logger.Error("save task list", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("save task list: %w", err)
	}
	return nil
}

// normalize returns tasks partitioned incomplete-first with duplicate ids
// removed, and an id counter above every id in use.
func normalize(s State) ([]Task, int, bool) {
	repaired := false
	next := s.NextID
	if next < 0 {
		next = 0
		repaired = true
	}

	seen := make(map[int]bool, len(s.Tasks))
	incomplete := make([]Task, 0, len(s.Tasks))
	var completed []Task
	for _, t := range s.Tasks {
		if seen[t.ID] {
			repaired = true
			continue
		}
		seen[t.ID] = true
		if t.ID >= next {
			next = t.ID + 1
			repaired = true
		}
		if t.Completed {
			completed = append(completed, t)
			continue
		}
		if len(completed) > 0 {
			repaired = true
		}
		incomplete = append(incomplete, t)
	}
	return append(incomplete, completed...), next, repaired
}
