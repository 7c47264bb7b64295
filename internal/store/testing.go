package store

// NewTestDB opens an in-memory database with migrations applied.
// This is only intended for use in tests.
func NewTestDB() (*DB, error) {
	return openPath(":memory:")
}
