// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dataset loads the published polling tables and answers questions
about them.

# Loading

The six tables are read once at startup, either from CSV files:

	store, err := dataset.LoadDir("./data")

or from a database populated by cmd/pollimport:

	store, err := dataset.LoadSQL(ctx, conn, db.DriverSQLite)

A missing or malformed table fails the load. There is no partial start.

# CSV Layout

Columns are matched by header name, case-insensitively:

  - date: YYYY-MM-DD or RFC 3339
  - series: party, leader, series or category
  - value: value, count, prop or proportion (empty or NA rows are skipped)

Demographics come either as a demographic/level column pair (long form) or
as one column per grouping, e.g. gender, age, region (wide form).

# Series

Series returns the distinct series of a table in first-appearance order;
Options turns them into the label/value set of the series checklist.
*/
package dataset
