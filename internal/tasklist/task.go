// Package tasklist implements the ordered checklist engine.
//
// A list holds a single ordered sequence of tasks partitioned by completion
// status: every incomplete task precedes every completed task. All mutations
// preserve that partition and are persisted through a Store before returning.
package tasklist

import (
	"context"
	"errors"
)

// Task is a single checklist item.
type Task struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"isCompleted"`
}

// State is the persisted form of a list: the ordered tasks plus the id counter.
type State struct {
	Tasks  []Task
	NextID int
}

// Store persists list state between runs.
type Store interface {
	// Load returns the previously saved state.
	// Implementations return an empty State for missing or malformed data.
	Load(ctx context.Context) (State, error)

	// Save replaces the saved state.
	Save(ctx context.Context, s State) error
}

var (
	// ErrEmptyText is returned by Add when the text is empty.
	ErrEmptyText = errors.New("task text required")

	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrCompleted is returned by Reorder for a completed task.
	// Completed tasks have no manual order.
	ErrCompleted = errors.New("cannot move a completed task")
)

// IsNoop reports whether err is a rejection that left the list unchanged.
func IsNoop(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrCompleted)
}
