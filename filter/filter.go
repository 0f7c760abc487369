// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/models"
)

var (
	ErrUnavailable  = errors.New("representation not published for dataset")
	ErrUnknownEvent = errors.New("unknown event kind")
	ErrUnknownParam = errors.New("unknown query parameter")
)

// Default date range offered when a session starts
var (
	DefaultStart = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	DefaultEnd   = time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Tables is the read side of the dataset store
type Tables interface {
	Get(key models.TableKey) *dataset.Dataset
}

type Kind string

const (
	KindDateRange      Kind = "date_range"
	KindDataset        Kind = "dataset"
	KindRepresentation Kind = "representation"
	KindDemographic    Kind = "demographic"
	KindSeries         Kind = "series"
)

// Event is one widget change. Only the fields matching Kind are read.
type Event struct {
	Kind           Kind
	Start          time.Time
	End            time.Time
	Dataset        models.DatasetKey
	Representation models.Representation
	Demographic    models.Demographic
	Series         []string
}

func DateRange(start, end time.Time) Event {
	return Event{Kind: KindDateRange, Start: start, End: end}
}

func SelectDataset(d models.DatasetKey) Event {
	return Event{Kind: KindDataset, Dataset: d}
}

func SelectRepresentation(r models.Representation) Event {
	return Event{Kind: KindRepresentation, Representation: r}
}

func SelectDemographic(d models.Demographic) Event {
	return Event{Kind: KindDemographic, Demographic: d}
}

func SelectSeries(names ...string) Event {
	return Event{Kind: KindSeries, Series: names}
}

// Default returns the state a new session starts with: the first-preference
// counts for the whole population with every series selected.
func Default(tables Tables) models.FilterState {
	st := models.FilterState{
		Start:          DefaultStart,
		End:            DefaultEnd,
		Dataset:        models.DatasetFirstPref,
		Representation: models.DatasetFirstPref.Representations()[0],
		Demographic:    models.DemographicTotal,
	}
	st.Series = tables.Get(st.Table()).Series()
	return st
}

// Apply returns the state after ev. st is never modified; on error it is
// returned unchanged.
//
// Switching dataset keeps the representation when the new dataset offers
// it and selects every series of the new table. Switching representation
// keeps the selected series that exist in the new table.
func Apply(tables Tables, st models.FilterState, ev Event) (models.FilterState, error) {
	next := st.Clone()

	switch ev.Kind {
	case KindDateRange:
		next.Start, next.End = ev.Start, ev.End

	case KindDataset:
		reps := ev.Dataset.Representations()
		if len(reps) == 0 {
			return st, fmt.Errorf("unknown dataset %q", ev.Dataset)
		}
		next.Dataset = ev.Dataset
		if !ev.Dataset.Offers(next.Representation) {
			next.Representation = reps[0]
		}
		next.Series = tables.Get(next.Table()).Series()

	case KindRepresentation:
		if !next.Dataset.Offers(ev.Representation) {
			return st, fmt.Errorf("%s/%s: %w", next.Dataset, ev.Representation, ErrUnavailable)
		}
		next.Representation = ev.Representation
		d := tables.Get(next.Table())
		next.Series = d.Restrict(st.Series)
		if len(next.Series) == 0 && len(st.Series) > 0 {
			next.Series = d.Series()
		}

	case KindDemographic:
		if _, err := models.ParseDemographic(string(ev.Demographic)); err != nil {
			return st, err
		}
		next.Demographic = ev.Demographic

	case KindSeries:
		next.Series = tables.Get(next.Table()).Restrict(ev.Series)

	default:
		return st, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	return next, nil
}

// Replay applies events in order. On error it returns the state reached
// before the failing event.
func Replay(tables Tables, st models.FilterState, events ...Event) (models.FilterState, error) {
	for _, ev := range events {
		next, err := Apply(tables, st, ev)
		if err != nil {
			return st, err
		}
		st = next
	}
	return st, nil
}
