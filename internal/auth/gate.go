package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/account"
)

// Sentinel errors for gate decisions.
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrForbidden    = errors.New("insufficient role")
)

// Gate resolves bearer tokens to live account records and enforces role
// requirements before any sensitive operation reaches the store.
type Gate struct {
	store    *account.Store
	sessions *SessionRegistry
}

// NewGate creates a gate over the given store and session registry.
func NewGate(store *account.Store, sessions *SessionRegistry) *Gate {
	return &Gate{store: store, sessions: sessions}
}

// Grant is the result of a successful authentication: the caller's live
// account record inside an exclusive partition transaction.
//
// Account points into Partition(), so mutations through it are picked up by
// Save. The caller must finish the grant: Save persists the partition,
// Close releases it without writing. Close after Save is a no-op, so the
// usual shape is:
//
//	grant, err := gate.Authenticate(ctx, token, "")
//	if err != nil { ... }
//	defer grant.Close()
//	// mutate grant.Account
//	return grant.Save(ctx)
type Grant struct {
	Account *account.Account
	Session Session

	tx *account.Tx
}

// Partition returns the live collection the account belongs to.
func (g *Grant) Partition() []account.Account {
	return g.tx.Accounts
}

// Append adds an account to the held partition. The grant's own Account
// pointer must not be mutated afterwards: appending may reallocate the
// collection.
func (g *Grant) Append(acct account.Account) {
	g.tx.Accounts = append(g.tx.Accounts, acct)
}

// Save rewrites the account's partition, persisting any mutations made
// through the grant.
func (g *Grant) Save(ctx context.Context) error {
	return g.tx.Commit(ctx)
}

// Close releases the partition without persisting. Safe to defer
// unconditionally.
func (g *Grant) Close() {
	g.tx.Close()
}

// Authenticate resolves a bearer token to a grant.
//
// The account is re-read fresh from the store on every call. The session
// only names an id and role; the store is the source of truth. If require
// is non-empty the session's role must match it exactly.
func (g *Gate) Authenticate(ctx context.Context, token string, require account.Role) (*Grant, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	sess, ok := g.sessions.Resolve(token)
	if !ok {
		return nil, ErrInvalidToken
	}

	tx, err := g.store.Begin(ctx, sess.Role)
	if err != nil {
		return nil, fmt.Errorf("loading %s partition: %w", sess.Role, err)
	}

	var acct *account.Account
	for i := range tx.Accounts {
		if tx.Accounts[i].ID == sess.AccountID {
			acct = &tx.Accounts[i]
			break
		}
	}
	if acct == nil {
		// The session outlived its account record.
		tx.Close()
		return nil, ErrInvalidToken
	}

	if require != "" && sess.Role != require {
		tx.Close()
		return nil, ErrForbidden
	}

	return &Grant{
		Account: acct,
		Session: sess,
		tx:      tx,
	}, nil
}
