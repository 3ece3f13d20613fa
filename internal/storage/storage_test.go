package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{7, "7"},
		{int64(42), "42"},
		{float64(3), "3"},     // JSON round trip of an integer id
		{float64(3.5), "3.5"}, // non-integral floats keep their fraction
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IDString(c.in))
	}
}

func TestSameID_MixedSchemes(t *testing.T) {
	assert.True(t, SameID(3, "3"))
	assert.True(t, SameID(float64(3), 3))
	assert.True(t, SameID("m4k2abc", "m4k2abc"))
	assert.False(t, SameID(3, "4"))
	assert.False(t, SameID(nil, "0"))
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMatches(t *testing.T) {
	rec := Record{"userId": float64(1), "type": "income", "amount": 10.0}

	assert.True(t, Matches(rec, Filter{"userId": "1"}))
	assert.True(t, Matches(rec, Filter{"userId": 1, "type": "income"}))
	assert.False(t, Matches(rec, Filter{"type": "expense"}))
	assert.False(t, Matches(rec, Filter{"missing": "x"}))
	assert.True(t, Matches(rec, nil))
}

func TestClone_IsDeep(t *testing.T) {
	rec := Record{
		"name": "a",
		"nested": map[string]any{
			"list": []any{"x", "y"},
		},
		"tags": []string{"one"},
	}

	cp := Clone(rec)
	cp["name"] = "b"
	cp["nested"].(map[string]any)["list"].([]any)[0] = "z"
	cp["tags"].([]string)[0] = "two"

	assert.Equal(t, "a", rec["name"])
	assert.Equal(t, "x", rec["nested"].(map[string]any)["list"].([]any)[0])
	assert.Equal(t, "one", rec["tags"].([]string)[0])
}

func TestKnownCollection(t *testing.T) {
	for _, c := range Collections {
		assert.True(t, KnownCollection(c))
	}
	assert.False(t, KnownCollection("ledgers"))
	assert.False(t, KnownCollection(""))
}
