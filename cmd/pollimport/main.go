// Command pollimport publishes the CSV tables into a SQL database so the
// dashboard can start with -source sql.
//
//	pollimport -data ./data -t sqlite -d file:polls.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/irish-dem-polling/dashboard/cliparse"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/db"
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	err := run(ctx, os.Args[1:])
	cancel()
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pollimport", flag.ContinueOnError)
	dataDir := fs.String("data", envOr("DATA_DIR", "./data"), "Directory holding the CSV tables")
	dbURL := fs.String("d", os.Getenv("DATABASE_URL"), "Database URL")
	dbType := fs.String("t", envOr("DATABASE_TYPE", db.DriverSQLite), "Database type (sqlite or postgres)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dbURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Validate every file before touching the database
	store, err := dataset.LoadDir(*dataDir)
	if err != nil {
		return fmt.Errorf("failed to load tables from %s: %w", *dataDir, err)
	}

	conn, err := db.Open(*dbType, *dbURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return err
	}

	for _, d := range store.Datasets() {
		if err := db.ReplaceObservations(ctx, conn, *dbType, d.Key(), d.Series(), d.Rows()); err != nil {
			return err
		}
		slog.Info("table imported", "table", d.Key().String(), "rows", humanize.Comma(int64(d.Len())), "series", len(d.Series()))
	}

	slog.Info("Import complete", "rows", humanize.Comma(int64(store.Rows())), "database", *dbType)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
