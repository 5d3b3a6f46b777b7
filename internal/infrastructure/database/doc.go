// Package database manages the SQLite connection for taskdeck.
//
// It handles directory creation, WAL mode, busy-timeout pragmas, a
// single-writer connection pool, and applies the partition schema at open.
package database
