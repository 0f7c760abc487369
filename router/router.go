// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/irish-dem-polling/dashboard/cliparse"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/handlers"
	"github.com/irish-dem-polling/dashboard/middleware"
	"github.com/irish-dem-polling/dashboard/session"
)

func NewRouter(store *dataset.Store, sessions *session.Manager, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(store, sessions, cfg)
	catalogHandler := handlers.NewCatalogHandler(store)
	chartHandler := handlers.NewChartHandler(store)
	sessionHandler := handlers.NewSessionHandler(store, sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard page (cookie session)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(dashboardHandler.ShowDashboard))
	mux.HandleFunc("POST /{$}", middleware.WithLogging(dashboardHandler.SubmitDashboard))

	// Stateless rendering
	mux.HandleFunc("GET /api/catalog", middleware.WithLogging(catalogHandler.GetCatalog))
	mux.HandleFunc("GET /api/series", middleware.WithLogging(catalogHandler.GetSeries))
	mux.HandleFunc("GET /api/chart", middleware.WithLogging(chartHandler.GetChart))
	mux.HandleFunc("GET /chart.svg", middleware.WithLogging(chartHandler.GetChartSVG))

	// Sessions
	mux.HandleFunc("POST /api/sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /api/sessions/{id}/events", middleware.WithLogging(sessionHandler.ApplyEvent))
	mux.HandleFunc("DELETE /api/sessions/{id}", middleware.WithLogging(sessionHandler.DeleteSession))
	mux.HandleFunc("GET /api/sessions/{id}/chart.svg", middleware.WithLogging(sessionHandler.GetSessionChartSVG))

	return mux
}
