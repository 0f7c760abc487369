// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores published polling tables in a SQL database.

The CSV files remain the source of truth. cmd/pollimport copies them into a
database so the dashboard can load from SQLite or PostgreSQL instead.

# Schema Creation

CreateSchema initializes the observation table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - observation: one row per figure, keyed by (dataset, representation, seq)

# Drivers

Queries are written with ? placeholders and rewritten to $n for PostgreSQL.
Callers import the driver themselves:

	_ "github.com/lib/pq"   // postgres
	_ "modernc.org/sqlite"  // sqlite
*/
package db
