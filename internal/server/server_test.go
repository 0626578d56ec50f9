package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/docx"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/server/ratelimit"
)

const sampleResume = `{
  "name": "Jane Doe",
  "title": "Data Engineer",
  "contact": {"email": "jane@example.com", "phone": "555-0100"},
  "professional_summary": ["Built AWS data pipelines in Python"],
  "technical_skills": {"Languages": ["Python", "SQL"], "Cloud": ["AWS"]},
  "experience": [
    {"role": "Data Engineer", "client": "Acme", "duration": "Jan 2021 - Present",
     "responsibilities": ["Migrated ETL to AWS Glue"], "environment": ["AWS", "Python"]}
  ]
}`

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// newTestServer creates a server writing into a temp dir with rate limiting off
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	return newTestServerWith(t, &ratelimit.Config{Enabled: false})
}

func newTestServerWith(t *testing.T, rl *ratelimit.Config) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(Config{
		Port:       0,
		OutputDir:  dir,
		AlwaysBold: []string{"Glue"},
		RateLimit:  rl,
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, dir
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func renderBody(style string, keywords ...string) map[string]any {
	return map[string]any{
		"resume":   json.RawMessage(sampleResume),
		"style":    style,
		"keywords": keywords,
	}
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(Config{Port: 70000})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Reused(t *testing.T) {
	s, _ := newTestServer(t)
	id := "3f2b8c1e-9d4a-4e6b-8f0a-1c2d3e4f5a6b"

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "not a uuid")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, "not a uuid", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodOptions, "/resumes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStylesEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodGet, "/styles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Styles []StyleInfo `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Styles, len(rendering.Styles()))

	defaults := 0
	for _, st := range resp.Styles {
		if st.Default {
			defaults++
			assert.Equal(t, rendering.DefaultStyle, st.Name)
		}
		assert.NotEmpty(t, st.SectionOrder)
	}
	assert.Equal(t, 1, defaults)
}

func TestHighlightEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/highlight", map[string]any{
		"text":     "Used Java and JavaScript",
		"keywords": []string{"java"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp HighlightResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Java", resp.Matches[0].Text)
	assert.Equal(t, 5, resp.Matches[0].Start)

	var joined strings.Builder
	for _, seg := range resp.Segments {
		joined.WriteString(seg.Text)
	}
	assert.Equal(t, "Used Java and JavaScript", joined.String())
}

func TestHighlightEndpoint_NoMatches(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/highlight", map[string]any{"text": "plain"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"segments":[{"text":"plain","highlighted":false}],"matches":[]}`, w.Body.String())
}

func TestHighlightEndpoint_BadBody(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/highlight", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/highlight", `{"text":"a","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateResume(t *testing.T) {
	s, dir := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes", renderBody("style_1", "Python"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "style_1", resp.Style)
	assert.Equal(t, "Jane_Doe_CV_20260314_092653.docx", resp.FileName)
	assert.Equal(t, filepath.Join(dir, "2026-03-14", resp.FileName), resp.Path)
	assert.Greater(t, resp.HighlightedRuns, 0)
	assert.FileExists(t, resp.Path)

	doc, err := docx.ReadFile(resp.Path)
	require.NoError(t, err)
	var bold []string
	for _, p := range doc.Paragraphs() {
		bold = append(bold, p.BoldText()...)
	}
	// caller keyword, skills and the always-bold list are all emphasized
	assert.Contains(t, bold, "Python")
	assert.Contains(t, bold, "Glue")
}

func TestCreateResume_DefaultStyle(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes", map[string]any{"resume": json.RawMessage(sampleResume)})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, rendering.DefaultStyle, resp.Style)
}

func TestCreateResume_Download(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes?download=true", renderBody("style_5"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, docxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Jane_Doe_20260314_092653.docx")

	doc, err := docx.Read(w.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "Jane Doe")
}

func TestCreateResume_AllStyles(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes", renderBody("all"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp RenderAllResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, len(rendering.Styles()))
	for i, res := range resp.Results {
		assert.Equal(t, rendering.Styles()[i].Name, res.Style)
		assert.FileExists(t, res.Path)
	}

	w = doRequest(t, s.Handler(), http.MethodPost, "/resumes?download=1", renderBody("all"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateResume_BadRequests(t *testing.T) {
	s, dir := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "missing resume", body: map[string]any{"style": "style_1"}},
		{name: "unknown style", body: renderBody("style_99")},
		{name: "unknown format", body: map[string]any{"resume": json.RawMessage(sampleResume), "format": "yaml"}},
		{name: "missing name", body: map[string]any{"resume": json.RawMessage(`{"title": "Engineer"}`)}},
		{name: "resume not an object", body: map[string]any{"resume": json.RawMessage(`[1, 2]`)}},
		{name: "string without object", body: map[string]any{"resume": "just text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s.Handler(), http.MethodPost, "/resumes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}

	// nothing was written for any rejected request
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateResume_SaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s, err := New(Config{OutputDir: blocker, RateLimit: &ratelimit.Config{Enabled: false}})
	require.NoError(t, err)
	defer s.Close()

	w := doRequest(t, s.Handler(), http.MethodPost, "/resumes", renderBody("style_1"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not_a_dir")
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServerWith(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/highlight", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	body := map[string]any{"text": "Go", "keywords": []string{"go"}}

	w := doRequest(t, s.Handler(), http.MethodPost, "/highlight", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = doRequest(t, s.Handler(), http.MethodPost, "/highlight", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// health is never limited
	for i := 0; i < 5; i++ {
		w = doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
