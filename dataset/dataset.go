// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/irish-dem-polling/dashboard/models"
)

var (
	ErrMissingTable  = errors.New("table missing")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformedRow  = errors.New("malformed row")
	ErrEmptyFile     = errors.New("empty file")
)

// Dataset is an immutable table of observations. Accessors return copies.
type Dataset struct {
	key    models.TableKey
	rows   []models.Observation
	series []string
	first  time.Time
	last   time.Time
}

// New builds a Dataset from rows in source order. series is the category
// column's universe in first-appearance order and may name series without
// observations; series found only in rows are appended.
func New(key models.TableKey, series []string, rows []models.Observation) *Dataset {
	d := &Dataset{
		key:    key,
		rows:   append([]models.Observation(nil), rows...),
		series: mergeSeries(series, rows),
	}
	for i, o := range d.rows {
		if i == 0 || o.Date.Before(d.first) {
			d.first = o.Date
		}
		if i == 0 || o.Date.After(d.last) {
			d.last = o.Date
		}
	}
	return d
}

func (d *Dataset) Key() models.TableKey {
	return d.key
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns the observations in source order
func (d *Dataset) Rows() []models.Observation {
	return append([]models.Observation(nil), d.rows...)
}

// DateRange returns the earliest and latest observation dates.
// Both are zero for an empty dataset.
func (d *Dataset) DateRange() (time.Time, time.Time) {
	return d.first, d.last
}

// Store holds the six published tables for the process lifetime.
// It is read-only after construction and safe for concurrent use.
type Store struct {
	tables map[models.TableKey]*Dataset
}

// NewStore requires exactly one dataset per published table
func NewStore(datasets ...*Dataset) (*Store, error) {
	s := &Store{tables: make(map[models.TableKey]*Dataset, len(models.Tables))}
	for _, d := range datasets {
		if !d.key.Valid() {
			return nil, fmt.Errorf("table %s is not published", d.key)
		}
		if _, dup := s.tables[d.key]; dup {
			return nil, fmt.Errorf("table %s loaded twice", d.key)
		}
		s.tables[d.key] = d
	}
	for _, key := range models.Tables {
		if _, ok := s.tables[key]; !ok {
			return nil, fmt.Errorf("%s: %w", key, ErrMissingTable)
		}
	}
	return s, nil
}

// LoadDir reads every table from its CSV file under dir.
// Any missing or malformed file fails the whole load.
func LoadDir(dir string) (*Store, error) {
	datasets := make([]*Dataset, 0, len(models.Tables))
	for _, key := range models.Tables {
		d, err := loadFile(key, filepath.Join(dir, key.FileName()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		datasets = append(datasets, d)
	}
	return NewStore(datasets...)
}

func loadFile(key models.TableKey, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(key, f)
}

// Get returns the table for key. Asking for a table that is not published
// is a programming error.
func (s *Store) Get(key models.TableKey) *Dataset {
	d, ok := s.tables[key]
	if !ok {
		panic(fmt.Sprintf("dataset: table %s is not published", key))
	}
	return d
}

// Datasets returns the tables in publication order
func (s *Store) Datasets() []*Dataset {
	out := make([]*Dataset, 0, len(models.Tables))
	for _, key := range models.Tables {
		out = append(out, s.tables[key])
	}
	return out
}

// Rows returns the number of observations across all tables
func (s *Store) Rows() int {
	n := 0
	for _, d := range s.tables {
		n += d.Len()
	}
	return n
}
