// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/irish-dem-polling/dashboard/auth"
	"github.com/irish-dem-polling/dashboard/chart"
	"github.com/irish-dem-polling/dashboard/cliparse"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/filter"
	"github.com/irish-dem-polling/dashboard/models"
	"github.com/irish-dem-polling/dashboard/session"
)

// SessionCookie carries the signed id of the browser's dashboard session
const SessionCookie = "dashboard_session"

type DashboardHandler struct {
	store    *dataset.Store
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewDashboardHandler(store *dataset.Store, sessions *session.Manager, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{store: store, sessions: sessions, cfg: cfg}
}

// ShowDashboard handles GET /
func (h *DashboardHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	s := h.browserSession(w, r)
	h.render(w, http.StatusOK, s.State(), "")
}

// SubmitDashboard handles POST /
// The form's changes are applied to the browser session, then the browser
// is sent back to GET / so a reload does not resubmit.
func (h *DashboardHandler) SubmitDashboard(w http.ResponseWriter, r *http.Request) {
	s := h.browserSession(w, r)

	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, s.State(), "Invalid form submission")
		return
	}

	st, err := s.Update(func(prev models.FilterState) (models.FilterState, error) {
		events, err := filter.EventsFromForm(prev, r.PostForm)
		if err != nil {
			return prev, err
		}
		return filter.Replay(h.store, prev, events...)
	})
	if err != nil {
		slog.Warn("dashboard form rejected", "session", s.ID, "error", err)
		h.render(w, http.StatusBadRequest, st, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// browserSession resolves the session named by the signed cookie, starting
// a new one when the cookie is absent, forged or expired. The cookie is
// reissued on every visit so its lifetime slides with the session's.
func (h *DashboardHandler) browserSession(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		id, err := auth.VerifySession(c.Value, h.cfg.SessionSecret)
		if err == nil {
			if s, ok := h.sessions.Get(id); ok {
				h.setSessionCookie(w, s)
				return s
			}
		} else if errors.Is(err, auth.ErrInvalidSession) {
			slog.Warn("session cookie signature mismatch", "remote", r.RemoteAddr)
		}
	}

	s := h.sessions.Create(filter.Default(h.store))
	h.setSessionCookie(w, s)
	return s
}

func (h *DashboardHandler) setSessionCookie(w http.ResponseWriter, s *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    auth.SignSession(s.ID, h.cfg.SessionSecret),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
	})
}

func (h *DashboardHandler) render(w http.ResponseWriter, status int, st models.FilterState, message string) {
	c := chart.ForState(h.store, st)

	var svg bytes.Buffer
	if err := chart.WriteSVG(c, &svg); err != nil {
		slog.Error("failed to render chart", "title", c.Title, "error", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	data := buildPageData(h.store.Get(st.Table()), st, c, svg.String(), message)

	var page bytes.Buffer
	if err := pageTemplate().Execute(&page, data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page.Bytes())
}

// pageData holds everything the dashboard template displays
type pageData struct {
	Title           string
	Error           string
	Start           string
	End             string
	Datasets        []pageChoice
	Representations []pageChoice
	Demographics    []pageChoice
	Series          []pageChoice
	Chart           template.HTML
	Lines           string
	Points          string
	TableRows       string
	SeriesShown     string
}

type pageChoice struct {
	Value    string
	Label    string
	Checked  bool
	Disabled bool
}

func buildPageData(d *dataset.Dataset, st models.FilterState, c models.Chart, svg, message string) pageData {
	data := pageData{
		Title:       c.Title,
		Error:       message,
		Start:       st.Start.Format(models.DateLayout),
		End:         st.End.Format(models.DateLayout),
		Chart:       template.HTML(svg),
		Lines:       humanize.Comma(int64(len(c.Lines))),
		Points:      humanize.Comma(int64(c.PointCount())),
		TableRows:   humanize.Comma(int64(d.Len())),
		SeriesShown: filter.SeriesShownField,
	}

	for _, ds := range models.Datasets {
		data.Datasets = append(data.Datasets, pageChoice{
			Value:   string(ds),
			Label:   ds.Label(),
			Checked: ds == st.Dataset,
		})
	}
	for _, rep := range models.Representations {
		data.Representations = append(data.Representations, pageChoice{
			Value:    string(rep),
			Label:    rep.Label(),
			Checked:  rep == st.Representation,
			Disabled: !st.Dataset.Offers(rep),
		})
	}
	for _, dem := range models.Demographics {
		data.Demographics = append(data.Demographics, pageChoice{
			Value:   string(dem),
			Label:   dem.Label(),
			Checked: dem == st.Demographic,
		})
	}

	selected := make(map[string]bool, len(st.Series))
	for _, s := range st.Series {
		selected[s] = true
	}
	for _, opt := range dataset.Options(d) {
		data.Series = append(data.Series, pageChoice{
			Value:   opt.Value,
			Label:   opt.Label,
			Checked: selected[opt.Value],
		})
	}

	return data
}
