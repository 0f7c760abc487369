// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Irish polling dashboard server.

The dashboard plots aggregated Irish opinion polls (first preference vote
intention, government satisfaction and party leader confidence) over time,
sliced by demographic groupings, from six pre-aggregated tables.

# Starting the Server

By default the tables are read from CSV files in ./data:

	go run . -data ./data

Or from a database filled by cmd/pollimport:

	go run . -source sql -t sqlite -d file:polls.db

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATA_DIR (-data): CSV directory (default: ./data)
  - DATA_SOURCE (-source): csv or sql (default: csv)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): SQL source
  - SESSION_SECRET (--session-secret): Cookie signing secret (random if unset)
  - SESSION_TTL (--session-ttl): Idle session lifetime (default: 30m)
  - LOG_LEVEL (--log-level): debug, info, warn or error

Variables may also come from a .env file in the working directory.

# Architecture

  - dataset: Table loading (CSV or SQL) and series universes
  - filter: The filter state reducer and form/query decoding
  - chart: Chart projection and SVG rendering
  - session: Per-visitor filter state with idle expiry
  - handlers: HTTP request handlers (dashboard, catalog, charts, sessions)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Enumerations, domain and request/response types
  - auth: Session cookie signing
  - db: SQL schema and observation storage
  - cliparse: Configuration parsing

Any missing or malformed table stops startup.
*/
package main
