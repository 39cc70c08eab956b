package store

// NewMemoryDB opens a migrated in-memory database.
// This is only intended for use in tests.
func NewMemoryDB() (*DB, error) {
	return Open(":memory:")
}
