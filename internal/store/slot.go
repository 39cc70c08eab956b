package store

import (
	"database/sql"
	"errors"
)

// GetItem retrieves a slot value by key.
// The boolean reports whether the key exists.
func (db *DB) GetItem(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`
		SELECT value FROM storage WHERE key = ?
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem stores a slot value, replacing any previous content
func (db *DB) SetItem(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO storage (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// RemoveItem deletes a slot. Removing a missing key is not an error.
func (db *DB) RemoveItem(key string) error {
	_, err := db.Exec(`DELETE FROM storage WHERE key = ?`, key)
	return err
}
