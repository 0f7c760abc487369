// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/irish-dem-polling/dashboard/models"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 520
)

// WriteSVG draws c as an SVG line chart. A chart without lines still
// produces a framed plot with axes.
func WriteSVG(c models.Chart, w io.Writer) error {
	return WriteSVGSize(c, w, DefaultWidth, DefaultHeight)
}

// WriteSVGSize is WriteSVG with explicit dimensions. go-chart writes text
// nodes verbatim, so every label is escaped here.
func WriteSVGSize(c models.Chart, w io.Writer, width, height int) error {
	xMin, xMax := xBounds(c)
	yMin, yMax := yBounds(c)

	graph := gochart.Chart{
		Title:      html.EscapeString(c.Title),
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 28}},
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006-01"),
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(xMin), Max: gochart.TimeToFloat64(xMax)},
		},
		YAxis: gochart.YAxis{
			Name:  html.EscapeString(c.YLabel),
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
		},
	}

	for i, l := range c.Lines {
		xs := make([]time.Time, len(l.Points))
		ys := make([]float64, len(l.Points))
		for j, p := range l.Points {
			xs[j] = p.Date
			ys[j] = p.Value
		}
		col := gochart.GetDefaultColor(i)
		graph.Series = append(graph.Series, gochart.TimeSeries{
			Name:    html.EscapeString(l.Name),
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    2.5,
			},
		})
	}

	if len(graph.Series) == 0 {
		// go-chart refuses to render without a visible series, so draw a
		// transparent one spanning the axes.
		graph.Series = []gochart.Series{gochart.TimeSeries{
			XValues: []time.Time{xMin, xMax},
			YValues: []float64{yMin, yMin},
			Style: gochart.Style{
				StrokeColor: drawing.ColorTransparent,
				StrokeWidth: 1,
			},
		}}
	} else {
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	}

	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// xBounds spans the plotted dates, or the selected range when nothing is
// plotted. The span is never empty.
func xBounds(c models.Chart) (time.Time, time.Time) {
	var lo, hi time.Time
	for _, l := range c.Lines {
		for _, p := range l.Points {
			if lo.IsZero() || p.Date.Before(lo) {
				lo = p.Date
			}
			if hi.IsZero() || p.Date.After(hi) {
				hi = p.Date
			}
		}
	}
	if lo.IsZero() {
		lo, hi = c.Start, c.End
		if hi.Before(lo) {
			lo, hi = hi, lo
		}
	}
	if !hi.After(lo) {
		hi = lo.AddDate(0, 0, 1)
	}
	return lo, hi
}

// yBounds starts at zero for non-negative data and leaves 5% headroom
func yBounds(c models.Chart) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range c.Lines {
		for _, p := range l.Points {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo > 0 {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.05
}
