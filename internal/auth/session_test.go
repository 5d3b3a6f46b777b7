package auth

import (
	"sync"
	"testing"

	"github.com/taskdeck/taskdeck/internal/account"
)

func TestSessionRegistry_IssueAndResolve(t *testing.T) {
	registry := NewSessionRegistry()

	token, err := registry.Issue("usr-12345678", account.RoleUser)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(token) != tokenBytes*2 {
		t.Errorf("token length = %d, want %d hex chars", len(token), tokenBytes*2)
	}

	sess, ok := registry.Resolve(token)
	if !ok {
		t.Fatal("Resolve() should find the issued token")
	}
	if sess.AccountID != "usr-12345678" {
		t.Errorf("AccountID = %q, want %q", sess.AccountID, "usr-12345678")
	}
	if sess.Role != account.RoleUser {
		t.Errorf("Role = %q, want %q", sess.Role, account.RoleUser)
	}
	if sess.IssuedAt.IsZero() {
		t.Error("IssuedAt should be set")
	}
}

func TestSessionRegistry_UnknownToken(t *testing.T) {
	registry := NewSessionRegistry()

	if _, ok := registry.Resolve("deadbeef"); ok {
		t.Error("Resolve() should miss on an unknown token")
	}
}

func TestSessionRegistry_ResolveHasNoSideEffects(t *testing.T) {
	registry := NewSessionRegistry()
	token, _ := registry.Issue("usr-1", account.RoleUser)

	first, _ := registry.Resolve(token)
	second, ok := registry.Resolve(token)
	if !ok {
		t.Fatal("token should remain valid after resolution")
	}
	if first.IssuedAt != second.IssuedAt {
		t.Error("Resolve() must not renew or mutate the session")
	}
}

func TestSessionRegistry_ConcurrentIssue(t *testing.T) {
	registry := NewSessionRegistry()

	const n = 50
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := registry.Issue("usr-1", account.RoleUser)
			if err != nil {
				t.Errorf("Issue() error = %v", err)
				return
			}
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, token := range tokens {
		if seen[token] {
			t.Fatalf("duplicate token issued: %q", token)
		}
		seen[token] = true
		if _, ok := registry.Resolve(token); !ok {
			t.Errorf("token %q should resolve", token)
		}
	}
}
