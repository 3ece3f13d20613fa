package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Record is one stored document. Both backends traffic in this shape so the
// rest of the application never needs to know which one served a call.
type Record = map[string]any

// Filter matches records by field equality. Values are compared with the
// same string normalization as ids, so a numeric 3 and the string "3" match.
type Filter = map[string]any

// Store is the persistence contract implemented by the flat-file engine and
// the MongoDB adapter.
type Store interface {
	// Insert assigns an id and timestamps, persists the record and returns
	// the stored copy. Fails with ErrUnknownCollection for unknown names.
	Insert(ctx context.Context, collection string, item Record) (Record, error)
	// List returns snapshot copies of every record matching filter.
	List(ctx context.Context, collection string, filter Filter) ([]Record, error)
	// FindByID returns the record with the given id, or nil when absent.
	FindByID(ctx context.Context, collection, id string) (Record, error)
	// Update overlays patch onto the existing record, refreshes updatedAt
	// and returns the merged record, or nil when the id is absent.
	Update(ctx context.Context, collection, id string, patch Record) (Record, error)
	// Remove deletes by id and reports whether anything was removed.
	Remove(ctx context.Context, collection, id string) (bool, error)
}

// Collection names recognized by both backends.
const (
	ColUsers             = "users"
	ColTransactions      = "transactions"
	ColDebtors           = "debtors"
	ColDebtHistory       = "debtHistory"
	ColInvestments       = "investments"
	ColSettings          = "settings"
	ColIncomeCategories  = "incomeCategories"
	ColExpenseCategories = "expenseCategories"
	ColPaymentMethods    = "paymentMethods"
)

// Collections lists every known collection, in file layout order.
var Collections = []string{
	ColUsers,
	ColTransactions,
	ColDebtors,
	ColDebtHistory,
	ColInvestments,
	ColSettings,
	ColIncomeCategories,
	ColExpenseCategories,
	ColPaymentMethods,
}

// ErrUnknownCollection is returned for operations against a collection name
// that is not part of Collections.
var ErrUnknownCollection = errors.New("unknown collection")

// KnownCollection reports whether name is a recognized collection.
func KnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// NowStamp returns the timestamp format used for createdAt/updatedAt.
// Nanosecond precision keeps successive stamps strictly ordered.
func NowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// IDString normalizes an id value for comparison. Integer ids from the file
// engine decode as float64 after a JSON round trip; string ids pass through.
func IDString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// SameID compares two id values by normalized string equality, tolerating
// the mixed integer/string id schemes that coexist in stored data.
func SameID(a, b any) bool {
	return IDString(a) == IDString(b)
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID produces an opaque string id: base36 millisecond timestamp
// prefix plus a random base36 suffix. This is the id scheme used for records
// created outside the document-database path.
func GenerateID() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		// rand failing is effectively fatal elsewhere; fall back to time
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + string(buf)
}

// Matches reports whether rec satisfies every field of filter.
func Matches(rec Record, filter Filter) bool {
	for k, want := range filter {
		got, ok := rec[k]
		if !ok {
			return false
		}
		switch want.(type) {
		case string, int, int32, int64, float64, nil:
			if !SameID(got, want) {
				return false
			}
		default:
			if !reflect.DeepEqual(got, want) {
				return false
			}
		}
	}
	return true
}

// Clone deep-copies a record so callers can never mutate stored state
// through a returned reference.
func Clone(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	default:
		return v
	}
}
