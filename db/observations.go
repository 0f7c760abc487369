// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/irish-dem-polling/dashboard/models"
)

// ReplaceObservations swaps the stored series universe and rows of one
// table, atomically. Both orders are preserved.
func ReplaceObservations(ctx context.Context, db *sql.DB, driver string, key models.TableKey, series []string, rows []models.Observation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"observation", "series"} {
		_, err = tx.ExecContext(ctx, rebind(driver, `
			DELETE FROM `+table+` WHERE dataset = ? AND representation = ?
		`), string(key.Dataset), string(key.Representation))
		if err != nil {
			return fmt.Errorf("failed to clear %s %s: %w", table, key, err)
		}
	}

	for i, name := range series {
		_, err := tx.ExecContext(ctx, rebind(driver, `
			INSERT INTO series (dataset, representation, seq, name) VALUES (?, ?, ?, ?)
		`), string(key.Dataset), string(key.Representation), i, name)
		if err != nil {
			return fmt.Errorf("failed to insert %s series %q: %w", key, name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, rebind(driver, `
		INSERT INTO observation (dataset, representation, seq, obs_date, series, demographic, level, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range rows {
		_, err := stmt.ExecContext(ctx,
			string(key.Dataset), string(key.Representation), i,
			o.Date.Format(models.DateLayout), o.Series, string(o.Demographic), o.Level, o.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", key, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// ReadObservations returns the stored rows of one table in source order
func ReadObservations(ctx context.Context, db *sql.DB, driver string, key models.TableKey) ([]models.Observation, error) {
	rows, err := db.QueryContext(ctx, rebind(driver, `
		SELECT obs_date, series, demographic, level, value
		FROM observation
		WHERE dataset = ? AND representation = ?
		ORDER BY seq
	`), string(key.Dataset), string(key.Representation))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", key, err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		var (
			o           models.Observation
			date, demog string
		)
		if err := rows.Scan(&date, &o.Series, &demog, &o.Level, &o.Value); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", key, err)
		}
		o.Date, err = time.Parse(models.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%s: bad stored date %q: %w", key, date, err)
		}
		o.Demographic, err = models.ParseDemographic(demog)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return out, nil
}

// ReadSeries returns the stored series universe of one table in source order
func ReadSeries(ctx context.Context, db *sql.DB, driver string, key models.TableKey) ([]string, error) {
	rows, err := db.QueryContext(ctx, rebind(driver, `
		SELECT name FROM series
		WHERE dataset = ? AND representation = ?
		ORDER BY seq
	`), string(key.Dataset), string(key.Representation))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s series: %w", key, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s series: %w", key, err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s series: %w", key, err)
	}
	return out, nil
}
