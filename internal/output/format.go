// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"checklist/internal/tasklist"
)

const (
	// ListSeparator separates the incomplete and completed partitions.
	ListSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {TEXT}\n", with "[x]" for completed tasks.
func FormatTask(w io.Writer, num int, task tasklist.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeText(task.Text))
}

// FormatTaskWithID is FormatTask with the task id appended as "  #ID".
func FormatTaskWithID(w io.Writer, num int, task tasklist.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s  #%d\n", num, box, normalizeText(task.Text), task.ID)
}

// FormatList prints the incomplete partition, then a separator and the
// completed partition when it is non-empty. Numbers continue across both
// partitions, matching snapshot order.
func FormatList(w io.Writer, incomplete, completed []tasklist.Task, showIDs bool) {
	line := FormatTask
	if showIDs {
		line = FormatTaskWithID
	}

	num := 1
	for _, task := range incomplete {
		line(w, num, task)
		num++
	}
	if len(completed) == 0 {
		return
	}
	fmt.Fprintln(w, ListSeparator)
	for _, task := range completed {
		line(w, num, task)
		num++
	}
}

// listJSON is the --json document.
type listJSON struct {
	Incomplete []tasklist.Task `json:"incomplete"`
	Completed  []tasklist.Task `json:"completed"`
	NextID     int             `json:"nextId"`
}

// WriteJSON writes both partitions and the id counter as an indented JSON object.
func WriteJSON(w io.Writer, incomplete, completed []tasklist.Task, nextID int) error {
	doc := listJSON{
		Incomplete: incomplete,
		Completed:  completed,
		NextID:     nextID,
	}
	if doc.Incomplete == nil {
		doc.Incomplete = []tasklist.Task{}
	}
	if doc.Completed == nil {
		doc.Completed = []tasklist.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
