// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/irish-dem-polling/dashboard/chart"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/filter"
	"github.com/irish-dem-polling/dashboard/middleware"
	"github.com/irish-dem-polling/dashboard/models"
)

// Size limits accepted for ?width= and ?height= on SVG endpoints
const (
	minChartSize = 200
	maxChartSize = 2400
)

type ChartHandler struct {
	store *dataset.Store
}

func NewChartHandler(store *dataset.Store) *ChartHandler {
	return &ChartHandler{store: store}
}

// GetChart handles GET /api/chart
// The query string describes the full filter state, see filter.FromQuery.
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	st, err := filter.FromQuery(h.store, r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, chart.ForState(h.store, st))
}

// GetChartSVG handles GET /chart.svg
func (h *ChartHandler) GetChartSVG(w http.ResponseWriter, r *http.Request) {
	st, err := filter.FromQuery(h.store, r.URL.Query(), "width", "height")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	writeChartSVG(w, r, chart.ForState(h.store, st))
}

// writeChartSVG renders into a buffer first so a render failure can still
// produce a JSON error
func writeChartSVG(w http.ResponseWriter, r *http.Request, c models.Chart) {
	width, ok := sizeParam(r, "width", chart.DefaultWidth)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "width must be between 200 and 2400")
		return
	}
	height, ok := sizeParam(r, "height", chart.DefaultHeight)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "height must be between 200 and 2400")
		return
	}

	var buf bytes.Buffer
	if err := chart.WriteSVGSize(c, &buf, width, height); err != nil {
		slog.Error("failed to render chart", "title", c.Title, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func sizeParam(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minChartSize || n > maxChartSize {
		return 0, false
	}
	return n, true
}
