// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the enumerations, domain types and API payloads of the
dashboard.

# Enumerations

Every user-facing choice is a typed string with a Label method, so display
names live next to the value they describe:

  - DatasetKey: firstpref, govsat, leaders, redc
  - Representation: prop, count
  - Demographic: total, gender, age, social, region, urban, num_const,
    vote_prob, vote_prev, vote_next

Not every dataset is published in every representation:

	firstpref  count
	govsat     prop, count
	leaders    prop, count
	redc       prop

TableKey pairs a dataset with a representation; Tables lists the six that
exist and FileName maps each to its CSV file.

# Domain Types

  - Observation: one aggregated figure (date, series, demographic level, value)
  - FilterState: the current selection of one session
  - Chart, Line, Point: a rendered selection, one line per series and level

# Request Types

  - EventRequest: one widget change applied to a session

# Response Types

  - CatalogResponse: datasets, representations and demographics with labels
  - SeriesOptionsResponse: label/value set for the series checklist
  - SessionResponse: session id, state, options and chart
  - ErrorResponse: error, message
*/
package models
