package sqlite

// stateKey is where the single ThinkFirst state blob lives. Mirrors
// the extension's storage key.
const stateKey = "thinkfirst_state"

// StateStore binds the KV table to the domain.Store interface for the
// one state blob.
type StateStore struct {
	db *DB
}

// NewStateStore creates a state store over an open database.
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Load returns the persisted blob; ok is false on first run.
func (s *StateStore) Load() ([]byte, bool, error) {
	return s.db.Get(stateKey)
}

// Save overwrites the persisted blob.
func (s *StateStore) Save(blob []byte) error {
	return s.db.Set(stateKey, blob)
}
