// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/irish-dem-polling/dashboard/cliparse"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/db"
)

// TestSecret signs session cookies in tests
const TestSecret = "test-session-secret"

// Series universes of the fixture tables, in first-appearance order
var (
	FirstPrefSeries   = []string{"Fianna Fáil", "Fine Gael", "Labour", "Sinn Féin"}
	GovSatCountSeries = []string{"Satisfied", "Dissatisfied", "No opinion"}
	GovSatPropSeries  = []string{"Satisfied", "Dissatisfied", "Don't know"}
	LeadersSeries     = []string{"Brian Cowen", "Enda Kenny", "Eamon Gilmore"}
	RedCSeries        = []string{"Fine Gael", "Fianna Fáil", "Sinn Féin", "Independent"}
)

// Fixtures holds one small CSV per published table. The B&A first
// preference and leader tables use the long layout, the others the wide one.
var Fixtures = map[string]string{
	"data_banda_firstpref_counts.csv": `date,party,demographic,level,count
2002-03-01,Fianna Fáil,total,,410
2002-03-01,Fine Gael,total,,230
2002-03-01,Fianna Fáil,age,18-24,40
2011-02-15,Fine Gael,total,,380
2011-02-15,Fianna Fáil,total,,160
2011-02-15,Labour,total,,190
2011-02-15,Fine Gael,age,18-24,35
2011-02-15,Fine Gael,age,65+,60
2020-01-20,Sinn Féin,total,,250
2020-01-20,Fine Gael,total,,220
2020-01-20,Fianna Fáil,total,,240
2020-01-20,Labour,total,,NA
2022-12-31,Sinn Féin,total,,330
2023-03-01,Sinn Féin,total,,350
`,
	"data_banda_govsat_counts.csv": `date,series,gender,age,region,value
2005-06-01,Satisfied,,,,420
2005-06-01,Dissatisfied,,,,480
2005-06-01,No opinion,,,,100
2005-06-01,Satisfied,Male,,,200
2005-06-01,Satisfied,Female,,,220
2016-09-01,Satisfied,,,,300
2016-09-01,Dissatisfied,,,,600
2016-09-01,Dissatisfied,,,Munster,150
`,
	"data_banda_govsat_prop.csv": `date,series,gender,age,region,value
2005-06-01,Satisfied,,,,0.42
2005-06-01,Dissatisfied,,,,0.48
2005-06-01,Don't know,,,,0.10
2005-06-01,Satisfied,Male,,,0.40
2016-09-01,Satisfied,,,,0.30
2016-09-01,Dissatisfied,,,,0.60
`,
	"data_banda_leaders_counts.csv": `date,leader,demographic,level,count
2008-05-01,Brian Cowen,total,,510
2008-05-01,Enda Kenny,total,,380
2012-04-01,Enda Kenny,total,,450
2012-04-01,Eamon Gilmore,total,,300
2012-04-01,Enda Kenny,region,Dublin,90
`,
	"data_banda_leaders_prop.csv": `date,leader,demographic,level,prop
2008-05-01,Brian Cowen,total,,0.51
2008-05-01,Enda Kenny,total,,0.38
2012-04-01,Enda Kenny,total,,0.45
2012-04-01,Eamon Gilmore,total,,0.30
`,
	"data_redc_firstpref_prop.csv": "\ufeff" + `date,party,age,social,prop
2016-02-01,Fine Gael,,,0.28
2016-02-01,Fianna Fáil,,,0.20
2016-02-01,Sinn Féin,,,0.17
2016-02-01,Independent,,,0.12
2020-02-01,Sinn Féin,,,0.24
2020-02-01,Sinn Féin,18-34,,0.35
2020-02-01,Fine Gael,,ABC1,0.27
`,
}

// WriteFixtureDir writes every fixture table into a fresh directory
func WriteFixtureDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range Fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

// NewTestStore loads the fixture tables
func NewTestStore(t *testing.T) *dataset.Store {
	t.Helper()

	store, err := dataset.LoadDir(WriteFixtureDir(t))
	if err != nil {
		t.Fatalf("Failed to load fixture store: %v", err)
	}
	return store
}

// OpenTestDB opens a private in-memory SQLite database with the schema
// applied. A single connection keeps every query on the same database.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DataDir:       "./data",
		Source:        cliparse.SourceCSV,
		DatabaseType:  db.DriverSQLite,
		SessionSecret: TestSecret,
		SessionTTL:    30 * time.Minute,
	}
}

// Date parses a calendar date or fails the test
func Date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", s, err)
	}
	return d
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a urlencoded form submit
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
