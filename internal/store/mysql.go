package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key VARCHAR(128) NOT NULL PRIMARY KEY,
    entry_value LONGTEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
);
`

// MySQL keeps the whole-collection values in a single kv table. It trades
// the file backend's locality for a database several operator hosts can
// point at.
type MySQL struct {
	db *sql.DB
}

// OpenMySQL connects with pooling defaults and ensures the kv table exists.
func OpenMySQL(dsn string) (*MySQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetConnMaxLifetime(time.Minute * 5)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply kv schema: %w", err)
	}
	return &MySQL{db: db}, nil
}

func (m *MySQL) Close() error {
	return m.db.Close()
}

func (m *MySQL) Get(key string) ([]byte, bool, error) {
	const query = `SELECT entry_value FROM kv_entries WHERE entry_key = ?`
	var value string
	if err := m.db.QueryRow(query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select kv entry: %w", err)
	}
	return []byte(value), true, nil
}

func (m *MySQL) Put(key, value string) error {
	const query = `
INSERT INTO kv_entries (entry_key, entry_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`
	if _, err := m.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}

func (m *MySQL) Delete(key string) error {
	const query = `DELETE FROM kv_entries WHERE entry_key = ?`
	if _, err := m.db.Exec(query, key); err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	return nil
}
