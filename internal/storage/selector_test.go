package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_NilConnPinsToFile(t *testing.T) {
	file := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	sel := NewSelector(nil, file)

	assert.Same(t, file, sel.Active())
	assert.Same(t, file, sel.File())
}

func TestSelector_DisconnectedConnFallsBack(t *testing.T) {
	file := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	conn := NewMongoConn("mongodb://127.0.0.1:1", "test", time.Second, zerolog.Nop())
	sel := NewSelector(conn, file)

	// never connected, so every call lands on the file store
	assert.Same(t, Store(file), sel.Active())
}

// TestSelector_MongoRoundTrip exercises the document-database adapter
// against a live server. Set MONGO_TEST_URI to enable it.
func TestSelector_MongoRoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	conn := NewMongoConn(uri, "meucontrole_test", 5*time.Second, zerolog.Nop())
	require.True(t, conn.Connect(ctx), "connect to %s", uri)
	defer conn.Disconnect(ctx)

	store := NewMongoStore(conn)

	rec, err := store.Insert(ctx, ColTransactions, Record{"userId": "t1", "type": "income", "amount": 10.0})
	require.NoError(t, err)
	id := IDString(rec["id"])
	require.NotEmpty(t, id)
	defer store.Remove(ctx, ColTransactions, id)

	found, err := store.FindByID(ctx, ColTransactions, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "income", found["type"])
	assert.NotContains(t, found, "_id", "raw object ids never leak out of the adapter")

	updated, err := store.Update(ctx, ColTransactions, id, Record{"amount": 20.0})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 20.0, updated["amount"])

	listed, err := store.List(ctx, ColTransactions, Filter{"userId": "t1"})
	require.NoError(t, err)
	assert.NotEmpty(t, listed)

	ok, err := store.Remove(ctx, ColTransactions, id)
	require.NoError(t, err)
	assert.True(t, ok)
}
