package todo

import (
	"errors"
	"strings"
	"testing"

	"github.com/taskdeck/taskdeck/internal/account"
)

func testAccount() account.Account {
	return account.New("Ada", "ada@example.com", "hash", account.RoleUser)
}

func TestCreate_TrimsAndPrepends(t *testing.T) {
	acct := testAccount()

	first, err := Create(&acct, "  buy milk  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Label != "buy milk" {
		t.Errorf("Label = %q, want trimmed %q", first.Label, "buy milk")
	}
	if first.Done {
		t.Error("new task should not be done")
	}
	if !strings.HasPrefix(first.ID, "tsk-") {
		t.Errorf("ID = %q, want tsk- prefix", first.ID)
	}

	second, err := Create(&acct, "walk dog")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks := List(&acct)
	if len(tasks) != 2 {
		t.Fatalf("List() = %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Error("tasks should be ordered newest first")
	}
}

func TestCreate_RejectsBadLabels(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"empty", ""},
		{"whitespace only", "   \t  "},
		{"too long", strings.Repeat("x", 141)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := testAccount()
			_, err := Create(&acct, tt.label)
			if !errors.Is(err, account.ErrValidation) {
				t.Errorf("Create(%q) error = %v, want ErrValidation", tt.label, err)
			}
			if len(acct.Tasks) != 0 {
				t.Error("rejected create must not mutate the task list")
			}
		})
	}
}

func TestCreate_MaxLengthLabel(t *testing.T) {
	acct := testAccount()
	label := strings.Repeat("x", 140)

	task, err := Create(&acct, label)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.Label != label {
		t.Error("140-char label should be stored unchanged")
	}
}

func TestToggle_FlipsWithoutExplicitValue(t *testing.T) {
	acct := testAccount()
	task, _ := Create(&acct, "flip me")

	toggled, err := Toggle(&acct, task.ID, nil)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !toggled.Done {
		t.Error("first toggle should flip to done")
	}

	toggled, err = Toggle(&acct, task.ID, nil)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if toggled.Done {
		t.Error("second toggle should flip back")
	}
}

func TestToggle_ExplicitValueIsIdempotent(t *testing.T) {
	acct := testAccount()
	task, _ := Create(&acct, "pin me")

	done := true
	for i := 0; i < 3; i++ {
		got, err := Toggle(&acct, task.ID, &done)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if !got.Done {
			t.Errorf("iteration %d: Done = false, want true", i)
		}
	}
}

func TestToggle_UnknownID(t *testing.T) {
	acct := testAccount()
	Create(&acct, "only task") //nolint:errcheck // label is valid

	_, err := Toggle(&acct, "tsk-missing", nil)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	acct := testAccount()
	keep, _ := Create(&acct, "keep")
	drop, _ := Create(&acct, "drop")

	if !Delete(&acct, drop.ID) {
		t.Fatal("Delete() = false for an existing task")
	}

	tasks := List(&acct)
	if len(tasks) != 1 || tasks[0].ID != keep.ID {
		t.Errorf("List() = %+v, want only %q", tasks, keep.ID)
	}
}

func TestDelete_UnknownIDLeavesListUnchanged(t *testing.T) {
	acct := testAccount()
	Create(&acct, "survivor") //nolint:errcheck // label is valid

	if Delete(&acct, "tsk-missing") {
		t.Error("Delete() = true for an unknown id")
	}
	if len(acct.Tasks) != 1 {
		t.Errorf("tasks = %d, want 1 (list must be unchanged)", len(acct.Tasks))
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	acct := testAccount()
	acct.Tasks = nil

	if tasks := List(&acct); tasks == nil {
		t.Error("List() should return an empty slice, not nil")
	}
}
