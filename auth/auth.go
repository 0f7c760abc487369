// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSession = errors.New("invalid session signature")
	ErrInvalidToken   = errors.New("invalid token format")
)

// GenerateSecret creates a random hex secret of the specified byte length
func GenerateSecret(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// signature computes the HMAC of a session id.
// Uses URL-safe base64 without padding so it fits in a cookie.
func signature(sessionID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SignSession returns the cookie value for a session: "<id>.<signature>"
func SignSession(sessionID, secret string) string {
	return sessionID + "." + signature(sessionID, secret)
}

// VerifySession checks a cookie value produced by SignSession and returns
// the session id it carries
func VerifySession(token, secret string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}
	id, sig := token[:i], token[i+1:]

	expected := signature(id, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSession
	}
	return id, nil
}
