// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polling dashboard.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, sessions, cfg)

# Endpoints

Health:

	GET /health

Dashboard page (browser session in a signed cookie):

	GET  /  - Render the dashboard
	POST /  - Apply the submitted form, then redirect to GET /

Stateless rendering (filter state in the query string):

	GET /api/catalog - Datasets, representations and demographics
	GET /api/series  - Series options for a dataset
	GET /api/chart   - Chart as JSON
	GET /chart.svg   - Chart as SVG

Sessions:

	POST   /api/sessions                - Start a session
	GET    /api/sessions/{id}           - State, options and chart
	POST   /api/sessions/{id}/events    - Apply one event
	DELETE /api/sessions/{id}           - End the session
	GET    /api/sessions/{id}/chart.svg - Session chart as SVG

Every route except /health is wrapped with middleware.WithLogging.
*/
package router
