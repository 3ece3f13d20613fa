package storage

// Selector routes each call to the active backend. The connection predicate
// is evaluated on every call, never memoized, so a database that becomes
// unreachable mid-session degrades the next call to the file store instead
// of requiring a restart.
type Selector struct {
	conn  *MongoConn
	mongo *MongoStore
	file  *FileStore
}

// NewSelector builds a selector over the file engine and an optional
// MongoDB connection. A nil conn pins every call to the file store.
func NewSelector(conn *MongoConn, file *FileStore) *Selector {
	s := &Selector{conn: conn, file: file}
	if conn != nil {
		s.mongo = NewMongoStore(conn)
	}
	return s
}

// Active returns the backend for the current call.
func (s *Selector) Active() Store {
	if s.conn != nil && s.conn.IsConnected() {
		return s.mongo
	}
	return s.file
}

// File exposes the flat-file engine for maintenance paths that are
// file-only regardless of connectivity (backup, raw store access).
func (s *Selector) File() *FileStore { return s.file }
