// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irish-dem-polling/dashboard/auth"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/models"
	"github.com/irish-dem-polling/dashboard/session"
	"github.com/irish-dem-polling/dashboard/testutil"
)

func newDashboardHandler(t *testing.T) (*DashboardHandler, *session.Manager) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	sessions := session.NewManager(cfg.SessionTTL)
	return NewDashboardHandler(testutil.NewTestStore(t), sessions, cfg), sessions
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatalf("Expected %s cookie to be set", SessionCookie)
	return nil
}

func TestShowDashboard_NewVisitor(t *testing.T) {
	h, sessions := newDashboardHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.ShowDashboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %q", ct)
	}

	c := sessionCookie(t, w)
	if !c.HttpOnly {
		t.Error("Expected HttpOnly session cookie")
	}
	id, err := auth.VerifySession(c.Value, testutil.TestSecret)
	if err != nil {
		t.Fatalf("Cookie signature invalid: %v", err)
	}
	if _, ok := sessions.Get(id); !ok {
		t.Error("Expected cookie to name a live session")
	}

	body := w.Body.String()
	for _, want := range []string{
		"Irish Demographic Polling Datasets",
		"<svg",
		`name="series_shown"`,
		`value="Sinn Féin" checked`,
		`value="firstpref" checked`,
		`value="prop" disabled`,
		"Total Population",
		"Acknowledgements",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestShowDashboard_ReusesSession(t *testing.T) {
	h, sessions := newDashboardHandler(t)

	w := httptest.NewRecorder()
	h.ShowDashboard(w, httptest.NewRequest("GET", "/", nil))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ShowDashboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	refreshed := sessionCookie(t, w)
	if refreshed.Value != cookie.Value {
		t.Error("Expected the cookie to keep naming the same session")
	}
	if want := int(testutil.GetTestConfig().SessionTTL.Seconds()); refreshed.MaxAge != want {
		t.Errorf("Expected refreshed MaxAge %d, got %d", want, refreshed.MaxAge)
	}
	if sessions.Len() != 1 {
		t.Errorf("Expected 1 session, got %d", sessions.Len())
	}
}

func TestShowDashboard_EscapesSeriesNames(t *testing.T) {
	dir := testutil.WriteFixtureDir(t)
	csv := "date,party,demographic,level,count\n" +
		"2011-02-15,Fine Gael,total,,380\n" +
		"2011-02-15,<b>Labour & Co</b>,total,,190\n"
	if err := os.WriteFile(filepath.Join(dir, "data_banda_firstpref_counts.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := dataset.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	cfg := testutil.GetTestConfig()
	h := NewDashboardHandler(store, session.NewManager(cfg.SessionTTL), cfg)

	w := httptest.NewRecorder()
	h.ShowDashboard(w, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	if strings.Contains(body, "<b>") {
		t.Error("Series name reached the page as markup")
	}
	if !strings.Contains(body, "&lt;b&gt;Labour &amp; Co&lt;/b&gt;") {
		t.Error("Expected the escaped series name in the page")
	}
	if strings.Contains(body, "B&A") {
		t.Error("Expected the chart title to be escaped")
	}
}

func TestShowDashboard_ForgedCookie(t *testing.T) {
	h, sessions := newDashboardHandler(t)
	s := sessions.Create(models.FilterState{})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: auth.SignSession(s.ID, "wrong-secret")})
	w := httptest.NewRecorder()
	h.ShowDashboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	c := sessionCookie(t, w)
	if id, _ := auth.VerifySession(c.Value, testutil.TestSecret); id == s.ID {
		t.Error("Forged cookie must not grant access to the session")
	}
}

func TestSubmitDashboard(t *testing.T) {
	h, sessions := newDashboardHandler(t)

	w := httptest.NewRecorder()
	h.ShowDashboard(w, httptest.NewRequest("GET", "/", nil))
	cookie := sessionCookie(t, w)
	id, _ := auth.VerifySession(cookie.Value, testutil.TestSecret)

	submit := func(form url.Values) *httptest.ResponseRecorder {
		req := testutil.MakeFormRequest("/", form)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		h.SubmitDashboard(w, req)
		return w
	}
	state := func() models.FilterState {
		s, ok := sessions.Get(id)
		if !ok {
			t.Fatal("Session disappeared")
		}
		return s.State()
	}

	// Switch dataset; the old checklist is ignored
	w = submit(url.Values{
		"dataset":        {"redc"},
		"representation": {"count"},
		"demographic":    {"total"},
		"start":          {"2001-01-01"},
		"end":            {"2022-12-31"},
		"series_shown":   {"1"},
		"series":         {"Labour"},
	})
	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
	st := state()
	if st.Dataset != models.DatasetRedC || st.Representation != models.RepresentationProp {
		t.Errorf("Expected redc/prop, got %s", st.Table())
	}
	if len(st.Series) != len(testutil.RedCSeries) {
		t.Errorf("Expected every redc series selected, got %v", st.Series)
	}

	// Uncheck everything
	w = submit(url.Values{"dataset": {"redc"}, "representation": {"prop"}, "series_shown": {"1"}})
	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if len(state().Series) != 0 {
		t.Errorf("Expected empty selection, got %v", state().Series)
	}

	// The page still renders with nothing selected
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ShowDashboard(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "0 lines") {
		t.Error("Expected page to report 0 lines")
	}

	// Bad input re-renders the page and keeps the state
	before := state()
	w = submit(url.Values{"start": {"someday"}})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if !strings.Contains(w.Body.String(), "invalid date") {
		t.Error("Expected the error to be shown on the page")
	}
	if state().Dataset != before.Dataset || len(state().Series) != len(before.Series) {
		t.Error("Rejected form must not change the session")
	}
}
