// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/irish-dem-polling/dashboard/models"
)

// Header names accepted for the series and value columns, in preference order
var (
	seriesColumns = []string{"party", "leader", "series", "category"}
	valueColumns  = []string{"value", "count", "prop", "proportion"}
)

// layout describes where each field lives in a CSV record
type layout struct {
	date        int
	series      int
	value       int
	demographic int // long form; -1 when absent
	level       int // long form; -1 when absent
	wide        map[models.Demographic]int
}

// ReadCSV parses one published table. The header decides the layout:
// a "demographic" column selects the long form, otherwise one column per
// demographic grouping is expected (wide form).
func ReadCSV(key models.TableKey, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	lay, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var (
		rows   []models.Observation
		series []string
		seen   = make(map[string]bool)
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// The universe includes series whose values are missing.
		if name := strings.TrimSpace(rec[lay.series]); name != "" && !seen[name] {
			seen[name] = true
			series = append(series, name)
		}

		obs, ok, err := lay.observation(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			rows = append(rows, obs)
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrEmptyFile)
	}
	return New(key, series, rows), nil
}

func parseHeader(header []string) (layout, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	firstOf := func(names []string) int {
		for _, n := range names {
			if i, ok := index[n]; ok {
				return i
			}
		}
		return -1
	}
	lookup := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	lay := layout{
		date:        lookup("date"),
		series:      firstOf(seriesColumns),
		value:       firstOf(valueColumns),
		demographic: lookup("demographic"),
		level:       lookup("level"),
	}
	switch {
	case lay.date < 0:
		return layout{}, fmt.Errorf("%w: date", ErrMissingColumn)
	case lay.series < 0:
		return layout{}, fmt.Errorf("%w: one of %s", ErrMissingColumn, strings.Join(seriesColumns, ", "))
	case lay.value < 0:
		return layout{}, fmt.Errorf("%w: one of %s", ErrMissingColumn, strings.Join(valueColumns, ", "))
	}

	if lay.demographic < 0 {
		lay.wide = make(map[models.Demographic]int)
		for _, d := range models.Demographics {
			if d == models.DemographicTotal {
				continue
			}
			if i := lookup(string(d)); i >= 0 {
				lay.wide[d] = i
			}
		}
	}
	return lay, nil
}

// observation converts one record. ok is false for rows whose value is
// missing; those are skipped rather than rejected.
func (lay layout) observation(rec []string) (models.Observation, bool, error) {
	var obs models.Observation

	raw := strings.TrimSpace(rec[lay.value])
	if isMissing(raw) {
		return obs, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return obs, false, fmt.Errorf("%w: value %q", ErrMalformedRow, raw)
	}
	obs.Value = v

	obs.Date, err = parseDate(rec[lay.date])
	if err != nil {
		return obs, false, err
	}

	obs.Series = strings.TrimSpace(rec[lay.series])
	if obs.Series == "" {
		return obs, false, fmt.Errorf("%w: empty series", ErrMalformedRow)
	}

	if lay.demographic >= 0 {
		err = lay.longForm(rec, &obs)
	} else {
		err = lay.wideForm(rec, &obs)
	}
	if err != nil {
		return obs, false, err
	}
	return obs, true, nil
}

func (lay layout) longForm(rec []string, obs *models.Observation) error {
	cell := strings.TrimSpace(rec[lay.demographic])
	if cell == "" {
		obs.Demographic = models.DemographicTotal
		return nil
	}
	d, err := models.ParseDemographic(strings.ToLower(cell))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	obs.Demographic = d
	if d == models.DemographicTotal {
		return nil
	}
	if lay.level >= 0 {
		obs.Level = strings.TrimSpace(rec[lay.level])
	}
	if obs.Level == "" {
		obs.Level = d.Label()
	}
	return nil
}

func (lay layout) wideForm(rec []string, obs *models.Observation) error {
	obs.Demographic = models.DemographicTotal
	// Walk in enumeration order so the error message is stable.
	for _, d := range models.Demographics {
		i, ok := lay.wide[d]
		if !ok {
			continue
		}
		cell := strings.TrimSpace(rec[i])
		if isMissing(cell) {
			continue
		}
		if obs.Demographic != models.DemographicTotal {
			return fmt.Errorf("%w: both %s and %s set", ErrMalformedRow, obs.Demographic, d)
		}
		obs.Demographic = d
		obs.Level = cell
	}
	return nil
}

func isMissing(s string) bool {
	return s == "" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "NaN")
}

// parseDate accepts calendar dates and RFC 3339 timestamps and truncates
// both to a UTC calendar day.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		var rfcErr error
		t, rfcErr = time.Parse(time.RFC3339, s)
		if rfcErr != nil {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedRow, s)
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseDate parses a calendar date from user input
func ParseDate(s string) (time.Time, error) {
	t, err := parseDate(s)
	if errors.Is(err, ErrMalformedRow) {
		return time.Time{}, fmt.Errorf("invalid date %q", strings.TrimSpace(s))
	}
	return t, err
}
