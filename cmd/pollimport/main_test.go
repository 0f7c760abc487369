package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/db"
	"github.com/irish-dem-polling/dashboard/models"
	"github.com/irish-dem-polling/dashboard/testutil"
)

func TestRun_ImportsEveryTable(t *testing.T) {
	dir := testutil.WriteFixtureDir(t)
	dbPath := filepath.Join(t.TempDir(), "polls.db")
	ctx := context.Background()

	require.NoError(t, run(ctx, []string{"-data", dir, "-t", db.DriverSQLite, "-d", dbPath}))
	// A second import replaces rather than duplicates
	require.NoError(t, run(ctx, []string{"-data", dir, "-t", db.DriverSQLite, "-d", dbPath}))

	conn, err := db.Open(db.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer conn.Close()

	got, err := dataset.LoadSQL(ctx, conn, db.DriverSQLite)
	require.NoError(t, err)

	want := testutil.NewTestStore(t)
	for _, key := range models.Tables {
		assert.Equal(t, want.Get(key).Rows(), got.Get(key).Rows(), key.String())
		assert.Equal(t, want.Get(key).Series(), got.Get(key).Series(), key.String())
	}
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := testutil.WriteFixtureDir(t)
	dbPath := filepath.Join(t.TempDir(), "polls.db")

	tests := []struct {
		name string
		args []string
	}{
		{"missing database URL", []string{"-data", dir}},
		{"missing data directory", []string{"-data", filepath.Join(dir, "nope"), "-d", dbPath}},
		{"unsupported database", []string{"-data", dir, "-t", "mysql", "-d", dbPath}},
		{"unknown flag", []string{"-verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(context.Background(), tt.args))
		})
	}

	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "no database is created when the tables fail to load")
}
