// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth signs and verifies dashboard session cookies.

# Session Cookies

The cookie value is the session id followed by an HMAC-SHA256 signature:

	value := auth.SignSession(sessionID, secret)
	id, err := auth.VerifySession(value, secret)

The signature is URL-safe base64 encoded without padding. A tampered id or
signature fails with ErrInvalidSession; a value without a separator fails
with ErrInvalidToken.

# Secrets

When no SESSION_SECRET is configured, the server generates one at startup:

	secret, err := auth.GenerateSecret(32)  // 64 hex characters

Sessions then do not survive a restart, which is fine since they are held in
memory anyway.
*/
package auth
