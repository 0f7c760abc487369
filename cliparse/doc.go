// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DataDir: Directory holding the six CSV tables (default: ./data)
  - Source: csv or sql (default: csv)
  - DatabaseURL: Database connection string (required for sql)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSecret: HMAC secret for session cookies (random when empty)
  - SessionTTL: Idle time before a session is discarded (default: 30m)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p                Server port
	-data             CSV directory
	-source           Table source
	-d                Database URL
	-t                Database type
	--session-secret  Session cookie secret
	--session-ttl     Session idle timeout
	--log-level       Log level

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATA_DIR       → -data
	DATA_SOURCE    → -source
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → --session-secret
	SESSION_TTL    → --session-ttl
	LOG_LEVEL      → --log-level

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first; variables already set win over it.

# Example

	// In main.go
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
