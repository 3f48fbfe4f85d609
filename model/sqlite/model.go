// Package sqlite implements the model peers on an embedded SQLite
// database.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"yatube/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	created_at    INTEGER NOT NULL,
	last_login    INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS groups (
	id          TEXT PRIMARY KEY,
	slug        TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS posts (
	id         TEXT PRIMARY KEY,
	author_id  TEXT NOT NULL REFERENCES users(id),
	text       TEXT NOT NULL,
	group_id   TEXT REFERENCES groups(id),
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_posts_group ON posts(group_id, created_at DESC);
`

// SQLiteModel bundles the sqlite-backed peers over one database handle.
type SQLiteModel struct {
	db        *sql.DB
	postPeer  *SQLitePostPeer
	userPeer  *SQLiteUserPeer
	groupPeer *SQLiteGroupPeer
}

// New opens the database at dsn and bootstraps the schema.
func New(dsn string) (*SQLiteModel, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: DSN opens a fresh database per pool connection; pin the
	// pool to one so every query sees the same data.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	m := &SQLiteModel{db: db}
	m.postPeer = &SQLitePostPeer{model: m}
	m.userPeer = &SQLiteUserPeer{model: m}
	m.groupPeer = &SQLiteGroupPeer{model: m}
	return m, nil
}

// Close closes the underlying database handle.
func (m *SQLiteModel) Close() error {
	return m.db.Close()
}

func (m *SQLiteModel) PostPeer() model.PostPeer {
	return m.postPeer
}

func (m *SQLiteModel) UserPeer() model.UserPeer {
	return m.userPeer
}

func (m *SQLiteModel) GroupPeer() model.GroupPeer {
	return m.groupPeer
}
