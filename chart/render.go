// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chart

import (
	"fmt"
	"sort"

	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/models"
)

// Tables is the read side of the dataset store
type Tables interface {
	Get(key models.TableKey) *dataset.Dataset
}

// ForState renders the table selected by st
func ForState(tables Tables, st models.FilterState) models.Chart {
	return Render(tables.Get(st.Table()), st)
}

// Render projects a table through a filter state. It keeps rows whose
// series is selected, whose date lies in [Start, End] and whose demographic
// matches, and emits one line per (series, level). Lines follow the series
// universe order, then the order levels first appear; points are sorted by
// date. A selection matching nothing gives a chart with no lines.
func Render(d *dataset.Dataset, st models.FilterState) models.Chart {
	c := models.Chart{
		Title:          Title(st),
		Dataset:        st.Dataset,
		Representation: st.Representation,
		Demographic:    st.Demographic,
		Start:          st.Start,
		End:            st.End,
		YLabel:         st.Representation.AxisLabel(),
		Lines:          []models.Line{},
	}

	rank := make(map[string]int)
	for i, s := range d.Series() {
		rank[s] = i
	}
	selected := make(map[string]bool, len(st.Series))
	for _, s := range st.Series {
		selected[s] = true
	}

	type lineKey struct{ series, level string }
	index := make(map[lineKey]int)

	for _, o := range d.Rows() {
		if !selected[o.Series] {
			continue
		}
		if o.Date.Before(st.Start) || o.Date.After(st.End) {
			continue
		}
		if o.Demographic != st.Demographic {
			continue
		}

		k := lineKey{o.Series, o.Level}
		i, ok := index[k]
		if !ok {
			i = len(c.Lines)
			index[k] = i
			c.Lines = append(c.Lines, models.Line{
				Name:   lineName(o.Series, o.Level),
				Series: o.Series,
				Level:  o.Level,
			})
		}
		c.Lines[i].Points = append(c.Lines[i].Points, models.Point{Date: o.Date, Value: o.Value})
	}

	sort.SliceStable(c.Lines, func(i, j int) bool {
		return rank[c.Lines[i].Series] < rank[c.Lines[j].Series]
	})
	for _, l := range c.Lines {
		pts := l.Points
		sort.SliceStable(pts, func(i, j int) bool {
			return pts[i].Date.Before(pts[j].Date)
		})
	}

	return c
}

// Title describes the selection, e.g. "RedC First Preference Polling
// (Proportional) by Age"
func Title(st models.FilterState) string {
	t := fmt.Sprintf("%s (%s)", st.Dataset.Label(), st.Representation.Label())
	if st.Demographic != models.DemographicTotal {
		t += " by " + st.Demographic.Label()
	}
	return t
}

func lineName(series, level string) string {
	if level == "" {
		return series
	}
	return series + " (" + level + ")"
}
