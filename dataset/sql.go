// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/irish-dem-polling/dashboard/db"
	"github.com/irish-dem-polling/dashboard/models"
)

// LoadSQL reads every table from the observation table written by
// cmd/pollimport. A table without rows counts as missing.
func LoadSQL(ctx context.Context, conn *sql.DB, driver string) (*Store, error) {
	datasets := make([]*Dataset, 0, len(models.Tables))
	for _, key := range models.Tables {
		rows, err := db.ReadObservations(ctx, conn, driver, key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("load %s: %w", key, ErrMissingTable)
		}
		series, err := db.ReadSeries(ctx, conn, driver, key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		datasets = append(datasets, New(key, series, rows))
	}
	return NewStore(datasets...)
}
