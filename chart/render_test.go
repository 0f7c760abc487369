// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chart_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irish-dem-polling/dashboard/chart"
	"github.com/irish-dem-polling/dashboard/filter"
	"github.com/irish-dem-polling/dashboard/models"
	"github.com/irish-dem-polling/dashboard/testutil"
)

func stateFor(t *testing.T, tables filter.Tables, events ...filter.Event) models.FilterState {
	t.Helper()

	st, err := filter.Replay(tables, filter.Default(tables), events...)
	require.NoError(t, err)
	return st
}

func lineNames(c models.Chart) []string {
	names := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		names[i] = l.Name
	}
	return names
}

func TestRender_FirstPreferenceTotals(t *testing.T) {
	store := testutil.NewTestStore(t)
	st := stateFor(t, store, filter.DateRange(testutil.Date(t, "2011-01-01"), testutil.Date(t, "2022-12-31")))

	c := chart.ForState(store, st)

	// One line per party, in the order parties first appear in the file
	assert.Equal(t, testutil.FirstPrefSeries, lineNames(c))
	assert.Equal(t, 7, c.PointCount())
	assert.Equal(t, "B&A First Preference Polling (Raw Counts)", c.Title)
	assert.Equal(t, "Respondents", c.YLabel)

	for _, l := range c.Lines {
		assert.Empty(t, l.Level, "total rows have no level")
		for _, p := range l.Points {
			assert.False(t, p.Date.Before(st.Start), "%s point before start", l.Name)
			assert.False(t, p.Date.After(st.End), "%s point after end", l.Name)
		}
	}
}

func TestRender_DateBoundsInclusive(t *testing.T) {
	store := testutil.NewTestStore(t)
	day := testutil.Date(t, "2022-12-31")
	st := stateFor(t, store, filter.DateRange(day, day))

	c := chart.ForState(store, st)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "Sinn Féin", c.Lines[0].Series)
	require.Len(t, c.Lines[0].Points, 1)
	assert.Equal(t, 330.0, c.Lines[0].Points[0].Value)
}

func TestRender_PointsSortedByDate(t *testing.T) {
	store := testutil.NewTestStore(t)
	st := stateFor(t, store, filter.DateRange(testutil.Date(t, "2000-01-01"), testutil.Date(t, "2030-01-01")))

	c := chart.ForState(store, st)

	for _, l := range c.Lines {
		for i := 1; i < len(l.Points); i++ {
			assert.False(t, l.Points[i].Date.Before(l.Points[i-1].Date), "%s out of order", l.Name)
		}
	}
	// Fine Gael appears in 2002 after an earlier Fianna Fáil row
	assert.Equal(t, "Fianna Fáil", c.Lines[0].Name)
	assert.Equal(t, testutil.Date(t, "2002-03-01"), c.Lines[1].Points[0].Date)
}

func TestRender_EmptySelection(t *testing.T) {
	store := testutil.NewTestStore(t)

	tests := []struct {
		name   string
		events []filter.Event
	}{
		{"no series", []filter.Event{filter.SelectSeries()}},
		{"range without polls", []filter.Event{filter.DateRange(testutil.Date(t, "1990-01-01"), testutil.Date(t, "1995-01-01"))}},
		{"inverted range", []filter.Event{filter.DateRange(testutil.Date(t, "2022-01-01"), testutil.Date(t, "2011-01-01"))}},
		{"demographic not published", []filter.Event{filter.SelectDemographic(models.DemographicVoteNext)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := chart.ForState(store, stateFor(t, store, tt.events...))

			assert.NotNil(t, c.Lines)
			assert.Empty(t, c.Lines)
			assert.Zero(t, c.PointCount())

			var buf bytes.Buffer
			require.NoError(t, chart.WriteSVG(c, &buf))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRender_DemographicLevels(t *testing.T) {
	store := testutil.NewTestStore(t)
	st := stateFor(t, store, filter.SelectDemographic(models.DemographicAge))

	c := chart.ForState(store, st)

	assert.Equal(t, []string{"Fianna Fáil (18-24)", "Fine Gael (18-24)", "Fine Gael (65+)"}, lineNames(c))
	assert.Equal(t, "B&A First Preference Polling (Raw Counts) by Age", c.Title)
}

func TestRender_WideFormLevels(t *testing.T) {
	store := testutil.NewTestStore(t)
	st := stateFor(t, store,
		filter.SelectDataset(models.DatasetGovSat),
		filter.SelectDemographic(models.DemographicGender),
	)

	c := chart.ForState(store, st)

	assert.Equal(t, []string{"Satisfied (Male)", "Satisfied (Female)"}, lineNames(c))
}

func TestRender_Idempotent(t *testing.T) {
	store := testutil.NewTestStore(t)
	st := stateFor(t, store, filter.SelectDataset(models.DatasetRedC))

	first := chart.ForState(store, st)
	second := chart.ForState(store, st)

	assert.Equal(t, first, second)
}

func TestRender_DatasetSwitchRoundTrip(t *testing.T) {
	store := testutil.NewTestStore(t)
	x := filter.Default(store)

	y, err := filter.Apply(store, x, filter.SelectDataset(models.DatasetLeaders))
	require.NoError(t, err)
	back, err := filter.Apply(store, y, filter.SelectDataset(models.DatasetFirstPref))
	require.NoError(t, err)

	assert.Equal(t, chart.ForState(store, x), chart.ForState(store, back))
	assert.Equal(t, testutil.LeadersSeries, lineNames(chart.ForState(store, y)))
}

func TestRender_OnlySelectedSeries(t *testing.T) {
	store := testutil.NewTestStore(t)
	st := stateFor(t, store,
		filter.SelectDataset(models.DatasetRedC),
		filter.SelectSeries("Sinn Féin", "Independent"),
	)

	c := chart.ForState(store, st)

	assert.Equal(t, []string{"Sinn Féin", "Independent"}, lineNames(c))
	assert.Equal(t, "Proportion", c.YLabel)
}

func TestTitle(t *testing.T) {
	st := models.FilterState{
		Dataset:        models.DatasetLeaders,
		Representation: models.RepresentationProp,
		Demographic:    models.DemographicRegion,
	}
	assert.Equal(t, "B&A Party Leader Confidence Polling (Proportional) by Province", chart.Title(st))

	st.Demographic = models.DemographicTotal
	assert.False(t, strings.Contains(chart.Title(st), " by "))
}
