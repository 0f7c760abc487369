// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Supported database/sql driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database and verifies the connection.
// The caller must import the driver package.
func Open(driver, url string) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database type %q", driver)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// The DDL is shared by SQLite and PostgreSQL, so dates are stored as
// YYYY-MM-DD text and seq keeps the source file order. series holds each
// table's universe, which may name series with no observations.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS observation (
    dataset TEXT NOT NULL,
    representation TEXT NOT NULL,
    seq INTEGER NOT NULL,
    obs_date TEXT NOT NULL,
    series TEXT NOT NULL,
    demographic TEXT NOT NULL,
    level TEXT NOT NULL DEFAULT '',
    value DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (dataset, representation, seq)
)`,
	`CREATE INDEX IF NOT EXISTS idx_observation_table ON observation(dataset, representation)`,
	`CREATE TABLE IF NOT EXISTS series (
    dataset TEXT NOT NULL,
    representation TEXT NOT NULL,
    seq INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (dataset, representation, seq)
)`,
}

// rebind rewrites ? placeholders into $n for PostgreSQL
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
