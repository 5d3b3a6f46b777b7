package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/account"
)

// maxLabelLength is the longest allowed task label after trimming.
const maxLabelLength = 140

// ErrTaskNotFound is returned when a task id is absent from the account's
// list. Ownership is implicit via list membership: another account's task id
// is indistinguishable from a nonexistent one.
var ErrTaskNotFound = errors.New("task not found")

// List returns the account's tasks, newest first, exactly as stored.
func List(acct *account.Account) []account.Task {
	if acct.Tasks == nil {
		return []account.Task{}
	}
	return acct.Tasks
}

// Create validates and prepends a new task to the account's list.
// The label is trimmed and must be 1-140 characters afterwards.
// Persistence is the caller's responsibility.
func Create(acct *account.Account, label string) (account.Task, error) {
	trimmed := strings.TrimSpace(label)
	if len(trimmed) == 0 || len(trimmed) > maxLabelLength {
		return account.Task{}, fmt.Errorf("label must be 1-%d characters after trimming: %w", maxLabelLength, account.ErrValidation)
	}

	task := account.NewTask(trimmed)
	acct.Tasks = append([]account.Task{task}, acct.Tasks...)
	return task, nil
}

// Toggle sets or flips a task's done flag. With an explicit value the
// operation is idempotent; without one the current state flips exactly once.
func Toggle(acct *account.Account, id string, done *bool) (account.Task, error) {
	for i := range acct.Tasks {
		if acct.Tasks[i].ID != id {
			continue
		}
		if done != nil {
			acct.Tasks[i].Done = *done
		} else {
			acct.Tasks[i].Done = !acct.Tasks[i].Done
		}
		return acct.Tasks[i], nil
	}
	return account.Task{}, ErrTaskNotFound
}

// Delete removes a task by id. Returns false if the id was absent, in which
// case the list is untouched and the caller must not persist.
func Delete(acct *account.Account, id string) bool {
	for i := range acct.Tasks {
		if acct.Tasks[i].ID == id {
			acct.Tasks = append(acct.Tasks[:i], acct.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
