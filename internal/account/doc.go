// Package account defines the taskdeck data model and the role-partitioned
// credential store.
//
// Accounts live in two disjoint durable partitions (users, admins), each
// persisted as one JSON-encoded collection that is rewritten in full on
// every mutation. A per-partition mutex serialises read-modify-write cycles;
// Store.Begin hands out an exclusive Tx over one partition.
//
// Email uniqueness is case-insensitive across the union of both partitions.
// Role is fixed at creation; an account never moves between partitions.
package account
