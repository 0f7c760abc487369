// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package filter holds the reducer that turns widget events into a new
// FilterState, plus helpers that derive events from forms, queries and API
// payloads. Apply is pure: the same tables, state and event always give the
// same result.
package filter
