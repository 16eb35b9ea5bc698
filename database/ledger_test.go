package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerSetReplacesDocument(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(openMemoryDB(t))

	require.NoError(t, ledger.Set(ctx, "reviews", "r1", map[string]interface{}{"rating": 4.0, "category": "Food"}))
	require.NoError(t, ledger.Set(ctx, "reviews", "r1", map[string]interface{}{"rating": 2.0}))

	doc, err := ledger.Get(ctx, "reviews", "r1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, number(t, doc.Data["rating"]))
	assert.NotContains(t, doc.Data, "category")
}

func TestLedgerMergeKeepsAbsentKeys(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(openMemoryDB(t))

	require.NoError(t, ledger.Merge(ctx, "users", "u1", map[string]interface{}{"name": "Asha", "status": "Studying"}))
	require.NoError(t, ledger.Merge(ctx, "users", "u1", map[string]interface{}{"status": "Passed Out"}))

	doc, err := ledger.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", doc.Data["name"])
	assert.Equal(t, "Passed Out", doc.Data["status"])
}

func TestLedgerGetMissing(t *testing.T) {
	ledger := NewLedger(openMemoryDB(t))

	_, err := ledger.Get(context.Background(), "users", "nobody")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestLedgerDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(openMemoryDB(t))

	require.NoError(t, ledger.Set(ctx, "reviews", "r1", map[string]interface{}{"rating": 1.0}))
	require.NoError(t, ledger.Delete(ctx, "reviews", "r1"))
	require.NoError(t, ledger.Delete(ctx, "reviews", "r1"))

	docs, err := ledger.List(ctx, "reviews")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLedgerAddBatchScopesByCollection(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(openMemoryDB(t))

	n, err := ledger.AddBatch(ctx, "colleges", []map[string]interface{}{
		{"name": "IIT Bombay"},
		{"name": "BITS Pilani", "type": "Private"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, ledger.Set(ctx, "reviews", "r1", map[string]interface{}{"rating": 3.0}))

	colleges, err := ledger.List(ctx, "colleges")
	require.NoError(t, err)
	assert.Len(t, colleges, 2)
	for _, doc := range colleges {
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "colleges", doc.Collection)
	}
}

// number accepts both decodings a JSON column may come back with.
func number(t *testing.T, v interface{}) float64 {
	t.Helper()
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, err := n.Float64()
		require.NoError(t, err)
		return f
	}
	t.Fatalf("not a number: %#v", v)
	return 0
}
