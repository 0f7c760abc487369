// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"

	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/filter"
	"github.com/irish-dem-polling/dashboard/middleware"
	"github.com/irish-dem-polling/dashboard/models"
)

type CatalogHandler struct {
	store *dataset.Store
}

func NewCatalogHandler(store *dataset.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// GetCatalog handles GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := models.CatalogResponse{
		DefaultStart: filter.DefaultStart.Format(models.DateLayout),
		DefaultEnd:   filter.DefaultEnd.Format(models.DateLayout),
	}

	for _, d := range models.Datasets {
		info := models.DatasetInfo{Key: d, Label: d.Label()}
		for _, rep := range d.Representations() {
			info.Representations = append(info.Representations, models.Choice{Value: string(rep), Label: rep.Label()})
		}
		resp.Datasets = append(resp.Datasets, info)
	}
	for _, rep := range models.Representations {
		resp.Representations = append(resp.Representations, models.Choice{Value: string(rep), Label: rep.Label()})
	}
	for _, d := range models.Demographics {
		resp.Demographics = append(resp.Demographics, models.Choice{Value: string(d), Label: d.Label()})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetSeries handles GET /api/series?dataset=...&representation=...
// It answers the options refresh that follows a dataset change: every
// series of the table, all selected.
func (h *CatalogHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("dataset") == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "dataset is required")
		return
	}

	st, err := filter.FromQuery(h.store, url.Values{
		"dataset":        {q.Get("dataset")},
		"representation": {q.Get("representation")},
	})
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	d := h.store.Get(st.Table())
	middleware.JSONResponse(w, http.StatusOK, models.SeriesOptionsResponse{
		Dataset:        st.Dataset,
		Representation: st.Representation,
		Options:        dataset.Options(d),
		Selected:       st.Series,
	})
}
