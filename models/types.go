// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// DateLayout is the calendar date format used in files, forms and queries
const DateLayout = "2006-01-02"

// Domain types

// Observation is one aggregated polling figure
type Observation struct {
	Date        time.Time   `json:"date"`
	Series      string      `json:"series"`
	Demographic Demographic `json:"demographic"`
	Level       string      `json:"level"`
	Value       float64     `json:"value"`
}

// FilterState is a session's current selection across all input dimensions.
// Series is always a subset of the series published in the selected table.
type FilterState struct {
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	Dataset        DatasetKey     `json:"dataset"`
	Representation Representation `json:"representation"`
	Demographic    Demographic    `json:"demographic"`
	Series         []string       `json:"series"`
}

// Table returns the table the state reads from
func (s FilterState) Table() TableKey {
	return TableKey{Dataset: s.Dataset, Representation: s.Representation}
}

// Clone returns a copy that shares no slices with s
func (s FilterState) Clone() FilterState {
	c := s
	c.Series = append([]string(nil), s.Series...)
	return c
}

type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Line is one plotted (series, demographic level) combination
type Line struct {
	Name   string  `json:"name"`
	Series string  `json:"series"`
	Level  string  `json:"level"`
	Points []Point `json:"points"`
}

// Chart is fully determined by a table and a FilterState
type Chart struct {
	Title          string         `json:"title"`
	Dataset        DatasetKey     `json:"dataset"`
	Representation Representation `json:"representation"`
	Demographic    Demographic    `json:"demographic"`
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	YLabel         string         `json:"y_label"`
	Lines          []Line         `json:"lines"`
}

// PointCount returns the number of plotted observations
func (c Chart) PointCount() int {
	n := 0
	for _, l := range c.Lines {
		n += len(l.Points)
	}
	return n
}

// Request types

// EventRequest carries one widget change. Value is used by the dataset,
// representation and demographic kinds, Values by series, Start/End by
// date_range.
type EventRequest struct {
	Kind   string   `json:"kind"`
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
	Start  string   `json:"start,omitempty"`
	End    string   `json:"end,omitempty"`
}

// Response types

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type DatasetInfo struct {
	Key             DatasetKey `json:"key"`
	Label           string     `json:"label"`
	Representations []Choice   `json:"representations"`
}

type CatalogResponse struct {
	Datasets        []DatasetInfo `json:"datasets"`
	Representations []Choice      `json:"representations"`
	Demographics    []Choice      `json:"demographics"`
	DefaultStart    string        `json:"default_start"`
	DefaultEnd      string        `json:"default_end"`
}

// SeriesOption is one entry of the selectable-series control
type SeriesOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SeriesOptionsResponse struct {
	Dataset        DatasetKey     `json:"dataset"`
	Representation Representation `json:"representation"`
	Options        []SeriesOption `json:"options"`
	Selected       []string       `json:"selected"`
}

type SessionResponse struct {
	ID      string         `json:"id"`
	State   FilterState    `json:"state"`
	Options []SeriesOption `json:"options"`
	Chart   *Chart         `json:"chart,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
