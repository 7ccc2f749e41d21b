package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"checklist/internal/tasklist"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num  int  // 1-based display number, when ByID is false
	ID   int  // engine id, when ByID is true
	ByID bool // true for "#ID" references
}

func (r TaskRef) String() string {
	if r.ByID {
		return "#" + strconv.Itoa(r.ID)
	}
	return strconv.Itoa(r.Num)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task reference at args[0] and returns the
// remaining arguments.
//
// Accepted forms:
//  1. all digits (e.g. 3) → display number as printed by list
//  2. # followed by digits (e.g. #12) → task id
//
// Anything else is an error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	arg := args[0]
	rest := args[1:]

	if digits, ok := strings.CutPrefix(arg, "#"); ok {
		if !isAllDigits(digits) {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", arg)
		}
		id, err := strconv.Atoi(digits)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id, ByID: true}, rest, nil
	}

	if !isAllDigits(arg) {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", arg)
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", arg)
	}
	return TaskRef{Num: num}, rest, nil
}

// ResolveTaskRef finds the referenced task in a snapshot.
// Display numbers count from 1 across the whole snapshot, incomplete tasks first.
func ResolveTaskRef(tasks []tasklist.Task, ref TaskRef) (tasklist.Task, error) {
	if ref.ByID {
		for _, t := range tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return tasklist.Task{}, fmt.Errorf("task not found: %s", ref)
	}

	if ref.Num < 1 || ref.Num > len(tasks) {
		return tasklist.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
	}
	return tasks[ref.Num-1], nil
}

// lookupTask parses the leading task reference in args and resolves it
// against the engine's current snapshot.
func lookupTask(e *tasklist.Engine, args []string) (tasklist.Task, []string, error) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		return tasklist.Task{}, nil, err
	}
	task, err := ResolveTaskRef(e.Snapshot(), ref)
	if err != nil {
		return tasklist.Task{}, nil, err
	}
	return task, rest, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
