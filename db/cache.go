package db

import (
	"database/sql"
)

// Device cache: a handful of string key-value pairs that outlive a single
// session but not an account (pending display name before registration
// completes, and the like).

const (
	sqlCreateCacheTable = `CREATE TABLE IF NOT EXISTS device_cache(
                        key varchar(100) NOT NULL PRIMARY KEY,
                        value text NOT NULL
                        )`
	sqlUpsertCache = `INSERT INTO device_cache(key, value) VALUES (?, ?)
                                                            ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	sqlSelectCache = `SELECT value FROM device_cache WHERE key = ?`
	sqlDeleteCache = `DELETE FROM device_cache WHERE key = ?`
)

// CacheGet returns the stored value, or "" when the key is absent.
func (db *DB) CacheGet(key string) (string, error) {
	var value string
	err := db.db.QueryRow(sqlSelectCache, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (db *DB) CacheSet(key, value string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpsertCache, key, value)
		return err
	})
}

func (db *DB) CacheClear(key string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteCache, key)
		return err
	})
}
