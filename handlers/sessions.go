// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/irish-dem-polling/dashboard/chart"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/filter"
	"github.com/irish-dem-polling/dashboard/middleware"
	"github.com/irish-dem-polling/dashboard/models"
	"github.com/irish-dem-polling/dashboard/session"
)

type SessionHandler struct {
	store    *dataset.Store
	sessions *session.Manager
}

func NewSessionHandler(store *dataset.Store, sessions *session.Manager) *SessionHandler {
	return &SessionHandler{store: store, sessions: sessions}
}

// CreateSession handles POST /api/sessions
// The new session starts from the default selection.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create(filter.Default(h.store))

	slog.Info("session created", "session", s.ID, "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, h.response(s.ID, s.State()))
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.response(s.ID, s.State()))
}

// ApplyEvent handles POST /api/sessions/{id}/events
// One widget change per request; the session's events are applied in
// arrival order.
func (h *SessionHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.EventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := filter.FromRequest(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := s.Update(func(st models.FilterState) (models.FilterState, error) {
		return filter.Apply(h.store, st, ev)
	})
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Debug("session event applied", "session", s.ID, "kind", ev.Kind)

	middleware.JSONResponse(w, http.StatusOK, h.response(s.ID, st))
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.sessions.Delete(id) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	slog.Info("session ended", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetSessionChartSVG handles GET /api/sessions/{id}/chart.svg
func (h *SessionHandler) GetSessionChartSVG(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	writeChartSVG(w, r, chart.ForState(h.store, s.State()))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return nil, false
	}

	s, ok := h.sessions.Get(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) response(id string, st models.FilterState) models.SessionResponse {
	c := chart.ForState(h.store, st)
	return models.SessionResponse{
		ID:      id,
		State:   st,
		Options: dataset.Options(h.store.Get(st.Table())),
		Chart:   &c,
	}
}
