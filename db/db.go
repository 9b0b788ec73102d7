// Package db is the durable settings store backing the palette's recent
// commands list.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
}

// Open opens (creating if needed) the settings database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate settings db: %w", err)
	}

	return db, nil
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			grp TEXT NOT NULL,
			key TEXT NOT NULL,
			idx INTEGER NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (grp, key, idx)
		);
	`)
	return err
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// ReadStringList returns the list stored under group/key in order. A missing
// list is empty, not an error.
func (d *DB) ReadStringList(group, key string) ([]string, error) {
	rows, err := d.conn.Query(`
		SELECT value FROM settings
		WHERE grp = ? AND key = ?
		ORDER BY idx
	`, group, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// WriteStringList replaces the list stored under group/key.
func (d *DB) WriteStringList(group, key string, values []string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM settings WHERE grp = ? AND key = ?`, group, key); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO settings (grp, key, idx, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.Exec(group, key, i, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}
