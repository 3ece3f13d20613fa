package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReshape_StripsInternalIDAndFlattensDriverTypes(t *testing.T) {
	oid := primitive.NewObjectID()
	stamp := primitive.NewDateTimeFromTime(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	rec := reshape(bson.M{
		"_id":    oid,
		"id":     oid.Hex(),
		"amount": int32(150),
		"when":   stamp,
		"nested": primitive.M{"ref": oid},
		"tags":   primitive.A{"a", int32(2)},
	})

	assert.NotContains(t, rec, "_id")
	assert.Equal(t, oid.Hex(), rec["id"])
	assert.Equal(t, int64(150), rec["amount"])
	assert.Equal(t, "2025-03-01T12:00:00Z", rec["when"])
	assert.Equal(t, map[string]any{"ref": oid.Hex()}, rec["nested"])
	assert.Equal(t, []any{"a", int64(2)}, rec["tags"])
}

func TestFromBSON_OrderedDocumentForm(t *testing.T) {
	// embedded documents decode to the ordered form when the target field
	// is an interface value
	got := fromBSON(primitive.D{
		{Key: "name", Value: "Mercado"},
		{Key: "inner", Value: primitive.D{{Key: "n", Value: int32(3)}}},
	})

	assert.Equal(t, map[string]any{
		"name":  "Mercado",
		"inner": map[string]any{"n": int64(3)},
	}, got)
}

func TestIDQuery_MatchesNumericSchemes(t *testing.T) {
	q := idQuery("42")
	assert.Equal(t, bson.M{"id": bson.M{"$in": []any{"42", int64(42), float64(42), int32(42)}}}, q)

	// ids beyond 32 bits never offer a truncated candidate
	big := idQuery("4294967299")
	assert.Equal(t, bson.M{"id": bson.M{"$in": []any{"4294967299", int64(4294967299), float64(4294967299)}}}, big)
}

func TestIDQuery_HexIDsStayExact(t *testing.T) {
	hex := primitive.NewObjectID().Hex()
	assert.Equal(t, bson.M{"id": hex}, idQuery(hex))
}
