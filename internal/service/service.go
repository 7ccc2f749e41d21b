// Package service defines the backend-agnostic interface for remote task lists.
package service

import (
	"context"
	"errors"
)

// Service defines the remote operations used to mirror the checklist.
// All Google Tasks API calls go through this interface.
// Commands never import Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every open task of a list, plus completed ones
	// when includeCompleted is true.
	// Results are in API order (no client-side sorting).
	ListTasks(ctx context.Context, listID string, includeCompleted bool) ([]Task, error)

	// CreateTask creates a new task in the specified list,
	// already completed when completed is true.
	CreateTask(ctx context.Context, listID, title string, completed bool) error
}

// PageSize is the number of tasks requested per backend page.
const PageSize = 100

var (
	// ErrListNotFound is returned by ResolveList when no list matches.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned by ResolveList when several lists match.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrAuth is returned when credentials are missing, expired or revoked.
	ErrAuth = errors.New("auth error")
)
