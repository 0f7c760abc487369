// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/models"
)

// SeriesShownField marks a form that rendered the series checklist, so an
// empty selection can be told apart from a form without the checklist.
const SeriesShownField = "series_shown"

// queryParams are the filter fields a stateless render request may carry
var queryParams = []string{"dataset", "representation", "demographic", "start", "end", "series"}

// FromQuery builds a state for a stateless render request. Missing fields
// keep their defaults; a missing series parameter selects every series,
// while series= with no names selects none. Keys other than the filter
// fields and extra are rejected with ErrUnknownParam.
func FromQuery(tables Tables, q url.Values, extra ...string) (models.FilterState, error) {
	st := Default(tables)

	for key := range q {
		if !slices.Contains(queryParams, key) && !slices.Contains(extra, key) {
			return st, fmt.Errorf("%w: %q", ErrUnknownParam, key)
		}
	}

	var events []Event
	if v := q.Get("dataset"); v != "" {
		d, err := models.ParseDatasetKey(v)
		if err != nil {
			return st, err
		}
		events = append(events, SelectDataset(d))
	}
	if v := q.Get("representation"); v != "" {
		r, err := models.ParseRepresentation(v)
		if err != nil {
			return st, err
		}
		events = append(events, SelectRepresentation(r))
	}
	if v := q.Get("demographic"); v != "" {
		d, err := models.ParseDemographic(v)
		if err != nil {
			return st, err
		}
		events = append(events, SelectDemographic(d))
	}
	if q.Has("start") || q.Has("end") {
		ev, err := dateRangeEvent(st, q)
		if err != nil {
			return st, err
		}
		events = append(events, ev)
	}
	if q.Has("series") {
		events = append(events, SelectSeries(nonEmpty(q["series"])...))
	}

	return Replay(tables, st, events...)
}

// EventsFromForm turns a dashboard form submit into the events that changed
// relative to prev. When the dataset changed, the submitted series belong to
// the old checklist and are not replayed.
func EventsFromForm(prev models.FilterState, form url.Values) ([]Event, error) {
	var events []Event

	active := prev.Dataset
	if v := form.Get("dataset"); v != "" {
		d, err := models.ParseDatasetKey(v)
		if err != nil {
			return nil, err
		}
		if d != prev.Dataset {
			events = append(events, SelectDataset(d))
			active = d
		}
	}
	if v := form.Get("representation"); v != "" {
		r, err := models.ParseRepresentation(v)
		if err != nil {
			return nil, err
		}
		if r != prev.Representation && active.Offers(r) {
			events = append(events, SelectRepresentation(r))
		}
	}
	if v := form.Get("demographic"); v != "" {
		d, err := models.ParseDemographic(v)
		if err != nil {
			return nil, err
		}
		if d != prev.Demographic {
			events = append(events, SelectDemographic(d))
		}
	}
	if form.Has("start") || form.Has("end") {
		ev, err := dateRangeEvent(prev, form)
		if err != nil {
			return nil, err
		}
		if !ev.Start.Equal(prev.Start) || !ev.End.Equal(prev.End) {
			events = append(events, ev)
		}
	}
	if active == prev.Dataset && form.Has(SeriesShownField) {
		events = append(events, SelectSeries(nonEmpty(form["series"])...))
	}

	return events, nil
}

// FromRequest converts an API event payload
func FromRequest(req models.EventRequest) (Event, error) {
	switch Kind(req.Kind) {
	case KindDateRange:
		start, err := dataset.ParseDate(req.Start)
		if err != nil {
			return Event{}, err
		}
		end, err := dataset.ParseDate(req.End)
		if err != nil {
			return Event{}, err
		}
		return DateRange(start, end), nil
	case KindDataset:
		d, err := models.ParseDatasetKey(req.Value)
		if err != nil {
			return Event{}, err
		}
		return SelectDataset(d), nil
	case KindRepresentation:
		r, err := models.ParseRepresentation(req.Value)
		if err != nil {
			return Event{}, err
		}
		return SelectRepresentation(r), nil
	case KindDemographic:
		d, err := models.ParseDemographic(req.Value)
		if err != nil {
			return Event{}, err
		}
		return SelectDemographic(d), nil
	case KindSeries:
		return SelectSeries(req.Values...), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, req.Kind)
}

// dateRangeEvent reads start/end, keeping the bound from st that is absent
func dateRangeEvent(st models.FilterState, v url.Values) (Event, error) {
	start, end := st.Start, st.End
	if s := v.Get("start"); s != "" {
		t, err := dataset.ParseDate(s)
		if err != nil {
			return Event{}, err
		}
		start = t
	}
	if s := v.Get("end"); s != "" {
		t, err := dataset.ParseDate(s)
		if err != nil {
			return Event{}, err
		}
		end = t
	}
	return DateRange(start, end), nil
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
