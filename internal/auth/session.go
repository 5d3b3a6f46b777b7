package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/account"
)

// tokenBytes is the number of random bytes in a session token.
const tokenBytes = 32

// Session binds a bearer token to an account identity and role for the
// process lifetime. Sessions are never persisted and never expire; a process
// restart invalidates every token. There is no logout or revocation in the
// current contract.
type Session struct {
	Token     string
	AccountID string
	Role      account.Role
	IssuedAt  time.Time
}

// SessionRegistry is the in-memory token-to-session mapping.
//
// It is constructed once at process start and passed by handle into the
// request path; there is no package-level instance. Safe for concurrent
// issue/resolve from multiple goroutines.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionRegistry creates an empty session registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]Session),
	}
}

// Issue generates a cryptographically random token, records the session,
// and returns the token.
func (r *SessionRegistry) Issue(accountID string, role account.Role) (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	token := hex.EncodeToString(b)

	r.mu.Lock()
	r.sessions[token] = Session{
		Token:     token,
		AccountID: accountID,
		Role:      role,
		IssuedAt:  time.Now().UTC(),
	}
	r.mu.Unlock()

	return token, nil
}

// Resolve looks up a session by token. Pure lookup: no side effects, no
// implicit renewal.
func (r *SessionRegistry) Resolve(token string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[token]
	return sess, ok
}
