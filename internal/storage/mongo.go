package storage

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConn owns the MongoDB client and its liveness state. It is
// constructed once at startup and passed to the selector; nothing else in
// the application talks to the driver directly.
type MongoConn struct {
	uri     string
	dbName  string
	timeout time.Duration
	log     zerolog.Logger

	mu        sync.Mutex
	client    *mongo.Client
	connected bool
}

// NewMongoConn prepares a connection manager without dialing. timeout bounds
// the connect attempt; zero means 10 seconds.
func NewMongoConn(uri, dbName string, timeout time.Duration, log zerolog.Logger) *MongoConn {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoConn{uri: uri, dbName: dbName, timeout: timeout, log: log}
}

// Connect attempts the connection within the configured timeout. On success
// the connected flag flips true and the host/database identity is logged.
// Failure is logged and reported as false, never returned as an error:
// callers treat it as "running in flat-file mode", not a fatal condition.
func (c *MongoConn) Connect(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(c.uri).
		SetServerSelectionTimeout(c.timeout).
		SetConnectTimeout(c.timeout))
	if err == nil {
		err = client.Ping(ctx, readpref.Primary())
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("mongodb unreachable, using local JSON store")
		c.connected = false
		return false
	}

	c.client = client
	c.connected = true
	c.log.Info().
		Str("host", redactHost(c.uri)).
		Str("database", c.dbName).
		Msg("mongodb connected")
	return true
}

// IsConnected reports whether the connection is usable right now. The live
// state is re-checked with a short ping on every call, not cached from
// startup, because the connection can drop independently of the flag.
func (c *MongoConn) IsConnected() bool {
	c.mu.Lock()
	client, connected := c.client, c.connected
	c.mu.Unlock()

	if !connected || client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary()) == nil
}

// Disconnect releases the connection and clears the flag. Shutdown only.
func (c *MongoConn) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.connected = false
	return err
}

func (c *MongoConn) database() *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Database(c.dbName)
}

// redactHost extracts the host portion of a connection URI, dropping any
// credentials before it reaches a log line.
func redactHost(uri string) string {
	s := uri
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexAny(s, "/?"); i >= 0 {
		s = s[:i]
	}
	return s
}

// MongoStore implements Store over MongoDB collections, reshaping documents
// to the flat-file engine's external conventions: a string id field, no
// internal object identifiers, same timestamp format and defaults.
type MongoStore struct {
	conn *MongoConn
}

// NewMongoStore wraps a connection manager as a Store.
func NewMongoStore(conn *MongoConn) *MongoStore {
	return &MongoStore{conn: conn}
}

func (s *MongoStore) collection(name string) (*mongo.Collection, error) {
	db := s.conn.database()
	if db == nil {
		return nil, fmt.Errorf("mongodb not connected")
	}
	return db.Collection(name), nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, item Record) (Record, error) {
	if !KnownCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	rec := Clone(item)
	if IDString(rec["id"]) == "" {
		rec["id"] = primitive.NewObjectID().Hex()
	}
	now := NowStamp()
	rec["createdAt"] = now
	rec["updatedAt"] = now

	if _, err := col.InsertOne(ctx, bson.M(rec)); err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	return Clone(rec), nil
}

func (s *MongoStore) List(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	q := bson.M{}
	for k, v := range filter {
		q[k] = v
	}
	cur, err := col.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	out := []Record{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		out = append(out, reshape(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor %s: %w", collection, err)
	}
	return out, nil
}

func (s *MongoStore) FindByID(ctx context.Context, collection, id string) (Record, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = col.FindOne(ctx, idQuery(id)).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", collection, err)
	}
	return reshape(doc), nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, patch Record) (Record, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	set["updatedAt"] = NowStamp()

	var doc bson.M
	err = col.FindOneAndUpdate(ctx,
		idQuery(id),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", collection, err)
	}
	return reshape(doc), nil
}

func (s *MongoStore) Remove(ctx context.Context, collection, id string) (bool, error) {
	col, err := s.collection(collection)
	if err != nil {
		return false, err
	}
	res, err := col.DeleteOne(ctx, idQuery(id))
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	return res.DeletedCount > 0, nil
}

// idQuery matches a stored id across schemes. Documents written through the
// flat-file engine carry integer ids, sometimes as numbers rather than
// strings, so an integral id string also matches its numeric forms. This
// mirrors the string-normalized comparison the file engine applies.
func idQuery(id string) bson.M {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return bson.M{"id": id}
	}
	candidates := []any{id, n, float64(n)}
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		candidates = append(candidates, int32(n))
	}
	return bson.M{"id": bson.M{"$in": candidates}}
}

// reshape converts a decoded BSON document into the external record shape:
// driver map/array types become plain Go types and _id is stripped.
func reshape(doc bson.M) Record {
	rec := make(Record, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		rec[k] = fromBSON(v)
	}
	return rec
}

func fromBSON(v any) any {
	switch x := v.(type) {
	case primitive.M:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = fromBSON(e)
		}
		return out
	case primitive.D:
		// nested documents decode to an ordered form by default
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromBSON(e)
		}
		return out
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time().UTC().Format(time.RFC3339Nano)
	case int32:
		return int64(x)
	default:
		return v
	}
}
