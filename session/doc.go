// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session keeps one FilterState per dashboard user.

Sessions are identified by random UUIDs and live in memory only. Each
session serializes its own updates, so two events for the same session never
interleave; different sessions never share state.

	sessions := session.NewManager(30 * time.Minute)
	go sessions.Run(ctx, time.Minute)

	s := sessions.Create(filter.Default(store))
	st, err := s.Update(func(st models.FilterState) (models.FilterState, error) {
		return filter.Apply(store, st, ev)
	})
*/
package session
