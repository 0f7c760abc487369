// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/irish-dem-polling/dashboard/models"
)

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"svg", http.StatusOK, "<svg></svg>"},
		{"session created", http.StatusCreated, `{"id":"abc"}`},
		{"redirect after submit", http.StatusSeeOther, ""},
		{"bad event", http.StatusBadRequest, `{"error":"Bad Request"}`},
		{"render failure", http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			w := httptest.NewRecorder()
			h(w, httptest.NewRequest("POST", "/api/sessions", nil))

			if !called {
				t.Fatal("Expected wrapped handler to run")
			}
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if w.Body.String() != tt.body {
				t.Errorf("Expected body %q, got %q", tt.body, w.Body.String())
			}
		})
	}
}

func TestStatusRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	rec.WriteHeader(http.StatusSeeOther)
	rec.Write([]byte("see /"))

	if rec.status != http.StatusSeeOther || w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303 recorded and forwarded, got %d / %d", rec.status, w.Code)
	}
	if rec.bytes != 5 {
		t.Errorf("Expected 5 bytes counted, got %d", rec.bytes)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, []models.SeriesOption{{Label: "Sinn Féin", Value: "Sinn Féin"}})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	want := `[{"label":"Sinn Féin","value":"Sinn Féin"}]`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Errorf("Expected body %s, got %s", want, got)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		status    int
		message   string
		wantError string
	}{
		{http.StatusBadRequest, "representation not published for dataset", "Bad Request"},
		{http.StatusNotFound, "session not found", "Not Found"},
		{http.StatusInternalServerError, "failed to render chart", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantError, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorResponse(w, tt.status, tt.message)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tt.wantError || resp.Message != tt.message {
				t.Errorf("Expected {%s %s}, got %+v", tt.wantError, tt.message, resp)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    models.EventRequest
	}{
		{
			name: "series event",
			body: `{"kind":"series","values":["Fine Gael","Labour"]}`,
			want: models.EventRequest{Kind: "series", Values: []string{"Fine Gael", "Labour"}},
		},
		{
			name: "trailing newline",
			body: "{\"kind\":\"dataset\",\"value\":\"redc\"}\n",
			want: models.EventRequest{Kind: "dataset", Value: "redc"},
		},
		{
			name: "unknown fields ignored",
			body: `{"kind":"demographic","value":"age","colour":"green"}`,
			want: models.EventRequest{Kind: "demographic", Value: "age"},
		},
		{name: "invalid JSON", body: `{kind:series}`, wantErr: true},
		{name: "empty body", body: "", wantErr: true},
		{name: "two values", body: `{"kind":"dataset"}{"kind":"series"}`, wantErr: true},
		{name: "oversized body", body: `{"kind":"series","values":["` + strings.Repeat("x", MaxBodyBytes) + `"]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/sessions/abc/events", strings.NewReader(tt.body))

			var got models.EventRequest
			err := ParseJSONBody(req, &got)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.Kind != tt.want.Kind || got.Value != tt.want.Value || strings.Join(got.Values, "|") != strings.Join(tt.want.Values, "|") {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseJSONBody_TrailingData(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"kind":"dataset"} []`))
	var got models.EventRequest
	if err := ParseJSONBody(req, &got); !errors.Is(err, ErrTrailingData) {
		t.Errorf("Expected ErrTrailingData, got %v", err)
	}
}

func TestCORS(t *testing.T) {
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chart"))
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantBody   string
		wantOrigin string
	}{
		{"preflight", "OPTIONS", "http://localhost:5173", http.StatusNoContent, "", "http://localhost:5173"},
		{"request with origin", "GET", "https://example.ie", http.StatusOK, "chart", "https://example.ie"},
		{"request without origin", "GET", "", http.StatusOK, "chart", "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/chart.svg", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, w.Body.String())
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Expected allowed origin %q, got %q", tt.wantOrigin, got)
			}
			if tt.origin != "" && w.Header().Get("Vary") != "Origin" {
				t.Error("Expected Vary: Origin for a reflected origin")
			}
			for _, m := range []string{"GET", "POST", "DELETE"} {
				if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), m) {
					t.Errorf("Expected %s in allowed methods", m)
				}
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:1234", "203.0.113.195"},
		{"forwarded beats real ip", map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"}, "10.0.0.1:1234", "192.168.1.100"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:1234", "203.0.113.50"},
		{"blank forwarded falls through", map[string]string{"X-Forwarded-For": " , 10.0.0.9"}, "10.0.0.5:8080", "10.0.0.5"},
		{"remote addr", nil, "192.168.1.50:54321", "192.168.1.50"},
		{"remote addr without port", nil, "192.168.1.50", "192.168.1.50"},
		{"ipv6 remote addr", nil, "[::1]:12345", "::1"},
		{"ipv6 forwarded", map[string]string{"X-Forwarded-For": "2001:db8::1"}, "127.0.0.1:1234", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("Expected IP %q, got %q", tt.want, got)
			}
		})
	}
}
