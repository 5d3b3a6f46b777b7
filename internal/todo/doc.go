// Package todo operates on the task list embedded in an account record.
//
// It has no identity lookup of its own: callers obtain the account through
// the authorisation gate, mutate it here, and persist via the gate's grant.
// Tasks are ordered newest first; the only reordering is prepend-on-create.
package todo
