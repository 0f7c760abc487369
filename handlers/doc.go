// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polling dashboard.

# Handler Types

Each handler is a struct holding the dataset store and, where needed, the
session manager and config:

  - DashboardHandler: The server-rendered dashboard page and its form
  - CatalogHandler: Enumerations and series options
  - ChartHandler: Stateless chart rendering (JSON and SVG)
  - SessionHandler: Session lifecycle and event application

Handlers are created via constructor functions:

	dashboardHandler := handlers.NewDashboardHandler(store, sessions, cfg)

# Dashboard Flow

A browser is tied to a session through the dashboard_session cookie, an
HMAC-signed session id. A missing, forged or expired cookie starts a new
session with the default selection.

	GET  / → ShowDashboard (renders controls and an inline SVG chart)
	POST / → SubmitDashboard (applies the changed fields, 303 to /)

# Session API

	POST   /api/sessions             → CreateSession
	POST   /api/sessions/{id}/events → ApplyEvent

Events are JSON objects with a kind of date_range, dataset,
representation, demographic or series. Events for one session are applied
one at a time; a rejected event leaves the state unchanged.
*/
package handlers
