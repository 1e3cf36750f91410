package store

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"goalsort/internal/domain"
)

// MaxTaskLength is the longest task text kept, in characters
const MaxTaskLength = 90

var (
	// ErrNotFound is returned when a goal id does not resolve
	ErrNotFound = errors.New("goal not found")
	// ErrEmptyTask is returned when a goal is added without text
	ErrEmptyTask = errors.New("goal task is empty")
)

// GoalStore provides ordered access to goals
type GoalStore interface {
	// List returns the goals in display order
	List(ctx context.Context) ([]domain.Goal, error)
	// Add appends a goal with the given task
	Add(ctx context.Context, task string) (domain.Goal, error)
	// Remove deletes a goal
	Remove(ctx context.Context, id string) error
	// Move places goal id immediately in front of inFrontOfID, or at the end
	// when inFrontOfID is empty
	Move(ctx context.Context, id, inFrontOfID string) error
	Close() error
}

// NormalizeTask trims the task and cuts it to MaxTaskLength characters
func NormalizeTask(task string) (string, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return "", ErrEmptyTask
	}
	if utf8.RuneCountInString(task) > MaxTaskLength {
		task = strings.TrimSpace(string([]rune(task)[:MaxTaskLength]))
	}
	return task, nil
}

// reorderIDs returns ids with id moved in front of inFrontOfID. The input is
// not modified.
func reorderIDs(ids []string, id, inFrontOfID string) ([]string, error) {
	from := indexOf(ids, id)
	if from < 0 {
		return nil, ErrNotFound
	}
	if inFrontOfID != "" && indexOf(ids, inFrontOfID) < 0 {
		return nil, ErrNotFound
	}

	if inFrontOfID == id {
		return append([]string(nil), ids...), nil
	}

	out := make([]string, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	if inFrontOfID == "" {
		return append(out, id), nil
	}

	// Insert index is taken after removal.
	at := indexOf(out, inFrontOfID)
	out = append(out, "")
	copy(out[at+1:], out[at:])
	out[at] = id
	return out, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
