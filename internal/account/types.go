package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents an authorisation tier. Each role maps to its own durable
// partition; role is fixed at account creation.
type Role string

const (
	// RoleUser is a regular account: owns a private task list, nothing else.
	RoleUser Role = "user"

	// RoleAdmin can enumerate all accounts and provision new ones,
	// in addition to everything RoleUser can do.
	RoleAdmin Role = "admin"
)

// IsValid returns true if the role is one of the two known tiers.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Task is a single item on an account's task list.
type Task struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is a stored identity with its embedded task list.
//
// The JSON form including PasswordHash is the durable persisted shape;
// anything leaving the process goes through Profile() instead.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	Tasks        []Task    `json:"tasks"`
}

// Profile is the externally visible view of an account: everything except
// the password hash.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	Tasks     []Task    `json:"tasks"`
}

// Profile returns the public view of the account.
func (a *Account) Profile() Profile {
	tasks := a.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	return Profile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		Tasks:     tasks,
	}
}

// New constructs an account with a generated ID, normalised email, and UTC
// creation timestamp. The caller supplies an already-derived password hash.
func New(name, email, passwordHash string, role Role) Account {
	return Account{
		ID:           "usr-" + uuid.NewString()[:8],
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		Tasks:        []Task{},
	}
}

// NewTask constructs a task with a generated ID and UTC creation timestamp.
// The label is stored as given; trimming is the caller's responsibility.
func NewTask(label string) Task {
	return Task{
		ID:        "tsk-" + uuid.NewString()[:8],
		Label:     label,
		Done:      false,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeEmail lower-cases and trims an email address. All storage and
// comparison of emails goes through this to keep uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ContainsEmail reports whether any account in the collection has the given
// email, case-insensitively.
func ContainsEmail(accounts []Account, email string) bool {
	normalized := NormalizeEmail(email)
	for i := range accounts {
		if accounts[i].Email == normalized {
			return true
		}
	}
	return false
}

// Sentinel errors for account operations.
var (
	ErrValidation      = errors.New("validation error")
	ErrEmailInUse      = errors.New("email already in use")
	ErrAccountNotFound = errors.New("account not found")
)
