// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dataset

import "github.com/irish-dem-polling/dashboard/models"

// Series returns the distinct series of the table, each once, in the order
// they first appear in the source.
func (d *Dataset) Series() []string {
	return append([]string(nil), d.series...)
}

// Restrict keeps the names of want that belong to the series universe.
// The result is deduplicated and follows universe order, never nil.
func (d *Dataset) Restrict(want []string) []string {
	wanted := make(map[string]bool, len(want))
	for _, w := range want {
		wanted[w] = true
	}
	out := []string{}
	for _, s := range d.series {
		if wanted[s] {
			out = append(out, s)
		}
	}
	return out
}

// Options returns the label/value set for the series checklist.
// Labels and values are both the series name.
func Options(d *Dataset) []models.SeriesOption {
	opts := make([]models.SeriesOption, len(d.series))
	for i, s := range d.series {
		opts[i] = models.SeriesOption{Label: s, Value: s}
	}
	return opts
}

func mergeSeries(series []string, rows []models.Observation) []string {
	seen := make(map[string]bool, len(series))
	out := []string{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range series {
		add(name)
	}
	for _, o := range rows {
		add(o.Series)
	}
	return out
}
