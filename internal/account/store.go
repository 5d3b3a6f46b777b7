package account

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Store is the role-partitioned credential store. Each role's accounts live
// in one row of the partitions table as a JSON-encoded collection, and every
// mutation rewrites that collection in full.
//
// A per-partition mutex serialises load→mutate→save so concurrent requests
// cannot lose updates. The users and admins partitions are independent; no
// cross-partition lock exists or is needed.
type Store struct {
	db *sql.DB
	mu map[Role]*sync.Mutex
}

// NewStore creates a store over an opened database. The partitions table is
// expected to exist (applied by database.Open).
func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
		mu: map[Role]*sync.Mutex{
			RoleUser:  {},
			RoleAdmin: {},
		},
	}
}

// partitionName maps a role to its durable partition row.
func partitionName(role Role) string {
	if role == RoleAdmin {
		return "admins"
	}
	return "users"
}

// load reads a partition without locking. Callers hold the partition mutex.
// A missing row is an empty partition; an unparseable payload is an error,
// never silently treated as empty.
func (s *Store) load(ctx context.Context, role Role) ([]Account, error) {
	name := partitionName(role)

	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM partitions WHERE name = ?", name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading partition %s: %w", name, err)
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(payload), &accounts); err != nil {
		return nil, fmt.Errorf("partition %s is corrupt: %w", name, err)
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

// save rewrites a partition without locking. Callers hold the partition mutex.
func (s *Store) save(ctx context.Context, role Role, accounts []Account) error {
	name := partitionName(role)

	payload, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encoding partition %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO partitions (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving partition %s: %w", name, err)
	}
	return nil
}

// Load returns a snapshot of a partition's accounts.
func (s *Store) Load(ctx context.Context, role Role) ([]Account, error) {
	mu := s.mu[partitionRole(role)]
	mu.Lock()
	defer mu.Unlock()
	return s.load(ctx, role)
}

// partitionRole collapses a role to the key guarding its partition.
func partitionRole(role Role) Role {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Begin acquires the partition lock and loads its accounts for a
// read-modify-write cycle. The returned Tx must be finished with Commit or
// Close; until then no other caller can touch the partition.
func (s *Store) Begin(ctx context.Context, role Role) (*Tx, error) {
	mu := s.mu[partitionRole(role)]
	mu.Lock()

	accounts, err := s.load(ctx, role)
	if err != nil {
		mu.Unlock()
		return nil, err
	}

	return &Tx{
		Accounts: accounts,
		store:    s,
		role:     role,
		mu:       mu,
	}, nil
}

// FindByEmail scans both partitions case-insensitively and returns the
// matching account and its role. Users are checked before admins. Returns
// ErrAccountNotFound if no account has the address.
//
// Must not be called while holding a partition transaction; it takes both
// partition locks in turn.
func (s *Store) FindByEmail(ctx context.Context, email string) (*Account, Role, error) {
	normalized := NormalizeEmail(email)

	for _, role := range []Role{RoleUser, RoleAdmin} {
		accounts, err := s.Load(ctx, role)
		if err != nil {
			return nil, "", err
		}
		for i := range accounts {
			if accounts[i].Email == normalized {
				return &accounts[i], role, nil
			}
		}
	}
	return nil, "", ErrAccountNotFound
}

// Tx is an exclusive read-modify-write cycle over one partition.
//
// Accounts is the live collection: mutate it in place (or reassign it), then
// Commit to rewrite the partition. Close releases the lock without writing
// and is safe to defer alongside a Commit.
type Tx struct {
	Accounts []Account

	store *Store
	role  Role
	mu    *sync.Mutex
	done  bool
}

// Commit rewrites the whole partition from Accounts and releases the lock.
// On write failure the lock is still held so a deferred Close releases it;
// the mutation is not durable and the caller must surface the error.
func (tx *Tx) Commit(ctx context.Context) error {
	if tx.done {
		return fmt.Errorf("partition transaction already finished")
	}
	if err := tx.store.save(ctx, tx.role, tx.Accounts); err != nil {
		return err
	}
	tx.done = true
	tx.mu.Unlock()
	return nil
}

// Close releases the partition lock without persisting. Calling Close after
// a successful Commit is a no-op, so it is safe to defer unconditionally.
func (tx *Tx) Close() {
	if tx.done {
		return
	}
	tx.done = true
	tx.mu.Unlock()
}
