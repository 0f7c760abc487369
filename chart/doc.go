// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package chart turns a table and a filter state into a line chart.

Render is a pure projection returning a models.Chart; WriteSVG draws that
chart with go-chart. Rendering the same inputs twice gives identical output,
and an empty selection renders an empty plot instead of failing.

	c := chart.Render(store.Get(st.Table()), st)
	if err := chart.WriteSVG(c, w); err != nil {
		// ...
	}
*/
package chart
