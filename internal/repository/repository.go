// Package repository implements one cohesive contract per entity kind over
// whichever storage backend is currently active. Backend choice, id
// normalization and record shaping never leak past this package.
package repository

import (
	"errors"
	"fmt"
	"sort"

	"github.com/andersonjr667/MeuControle/internal/storage"
)

// ErrNotFound signals a lookup by id that yielded nothing. Callers map it
// to a 404-equivalent, distinct from system errors.
var ErrNotFound = errors.New("record not found")

// ErrPermissionDenied signals a record that exists but belongs to another
// user. Every read, update and delete of user-scoped data checks this here,
// in the repository layer; no call path skips it.
var ErrPermissionDenied = errors.New("permission denied")

// ValidationError marks a create/update rejected for missing or malformed
// required input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// PartialWriteError reports a cross-entity cascade where a later write
// failed after an earlier one succeeded. The first write is kept; there is
// no rollback. Callers can unwrap the underlying failure.
type PartialWriteError struct {
	Op  string
	Err error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s left partially applied: %v", e.Op, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// requireOwner enforces the ownership invariant on a fetched record.
func requireOwner(rec storage.Record, userID string) error {
	if rec == nil {
		return ErrNotFound
	}
	if !storage.SameID(rec["userId"], userID) {
		return ErrPermissionDenied
	}
	return nil
}

// sortByStringField orders records by a string field, descending when desc
// is set, with createdAt as tiebreaker. ISO-8601 strings compare correctly
// lexicographically.
func sortByStringField(recs []storage.Record, field string, desc bool) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := asSortKey(recs[i], field), asSortKey(recs[j], field)
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		ca, cb := asSortKey(recs[i], "createdAt"), asSortKey(recs[j], "createdAt")
		if desc {
			return ca > cb
		}
		return ca < cb
	})
}

func asSortKey(rec storage.Record, field string) string {
	if s, ok := rec[field].(string); ok {
		return s
	}
	return ""
}
