package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-formatter/internal/highlight"
	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/jonathan/resume-formatter/internal/record"
	"github.com/jonathan/resume-formatter/internal/rendering"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// RenderRequest represents the request body for POST /resumes
type RenderRequest struct {
	Resume      json.RawMessage `json:"resume" validate:"required"`
	Style       string          `json:"style,omitempty" validate:"omitempty,max=64"`
	Keywords    []string        `json:"keywords,omitempty" validate:"max=500,dive,max=200"`
	Format      string          `json:"format,omitempty" validate:"omitempty,oneof=auto standard dotnet .net"`
	NoHighlight bool            `json:"no_highlight,omitempty"`
}

// RenderResponse represents one saved document
type RenderResponse struct {
	Path            string `json:"path"`
	Style           string `json:"style"`
	FileName        string `json:"file_name"`
	Paragraphs      int    `json:"paragraphs"`
	HighlightedRuns int    `json:"highlighted_runs"`
}

// RenderAllResponse is returned when style is "all"
type RenderAllResponse struct {
	Results []RenderResponse `json:"results"`
}

// HighlightRequest represents the request body for POST /highlight
type HighlightRequest struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords" validate:"max=500,dive,max=200"`
}

// HighlightResponse carries the segments and accepted matches
type HighlightResponse struct {
	Segments []highlight.Segment `json:"segments"`
	Matches  []highlight.Match   `json:"matches"`
}

// StyleInfo describes a named style for GET /styles
type StyleInfo struct {
	Name          string   `json:"name"`
	SectionOrder  []string `json:"section_order"`
	HeadingStyle  string   `json:"heading_style"`
	NameAlignment string   `json:"name_alignment"`
	FontFamily    string   `json:"font_family"`
	FontSizePt    float64  `json:"font_size_pt"`
	FileSuffix    string   `json:"file_suffix"`
	Default       bool     `json:"default,omitempty"`
}

// decode reads a size-capped JSON body into v and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "(body)", Message: "invalid request body: " + err.Error()}
	}
	if err := s.validate.Struct(v); err != nil {
		return fromValidator(err)
	}
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStyles lists the named styles
func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	styles := rendering.Styles()
	out := make([]StyleInfo, 0, len(styles))
	for _, cfg := range styles {
		order := make([]string, len(cfg.SectionOrder))
		for i, sec := range cfg.SectionOrder {
			order[i] = string(sec)
		}
		out = append(out, StyleInfo{
			Name:          cfg.Name,
			SectionOrder:  order,
			HeadingStyle:  string(cfg.HeadingStyle),
			NameAlignment: string(cfg.NameAlignment),
			FontFamily:    cfg.FontFamily,
			FontSizePt:    cfg.BaseFontSizePt,
			FileSuffix:    cfg.FileSuffix,
			Default:       cfg.Name == rendering.DefaultStyle,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"styles": out})
}

// handleHighlight runs the highlighter over a text field
func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorFrom(w, r, err)
		return
	}

	h := highlight.New(req.Keywords)
	matches := h.Matches(req.Text)
	if matches == nil {
		matches = []highlight.Match{}
	}
	s.jsonResponse(w, http.StatusOK, HighlightResponse{
		Segments: h.Segments(req.Text),
		Matches:  matches,
	})
}

// handleCreateResume renders a record into one or all styles.
// With ?download=true the single rendered file is returned as the body.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorFrom(w, r, err)
		return
	}

	download, _ := strconv.ParseBool(r.URL.Query().Get("download"))
	all := strings.EqualFold(strings.TrimSpace(req.Style), "all")
	if download && all {
		s.errorFrom(w, r, &ErrValidation{Field: "style", Message: "download needs a single style"})
		return
	}

	format, err := record.ParseFormat(req.Format)
	if err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}
	rec, err := record.Parse(req.Resume, format)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	set := keywords.ForRecord(rec, req.Keywords, s.alwaysBold)

	var cfgs []rendering.Config
	if all {
		cfgs = rendering.Styles()
	} else {
		cfg, err := rendering.LookupStyle(req.Style)
		if err != nil {
			s.errorFrom(w, r, err)
			return
		}
		cfgs = []rendering.Config{cfg}
	}
	if req.NoHighlight {
		for i := range cfgs {
			cfgs[i] = cfgs[i].WithHighlight(false)
		}
	}

	results, err := rendering.RenderAll(r.Context(), s.renderer, rec, cfgs, set)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	log.Printf("[server] Rendered %d document(s) for %q id=%s", len(results), rec.Name, requestID(r.Context()))

	if download {
		s.sendDocument(w, r, results[0])
		return
	}

	if all {
		resp := RenderAllResponse{Results: make([]RenderResponse, len(results))}
		for i, res := range results {
			resp.Results[i] = toRenderResponse(res)
		}
		s.jsonResponse(w, http.StatusCreated, resp)
		return
	}
	s.jsonResponse(w, http.StatusCreated, toRenderResponse(results[0]))
}

func toRenderResponse(res *rendering.Result) RenderResponse {
	return RenderResponse{
		Path:            res.Path,
		Style:           res.Style,
		FileName:        filepath.Base(res.Path),
		Paragraphs:      res.Paragraphs,
		HighlightedRuns: res.HighlightedRuns,
	}
}

// sendDocument streams a saved document back to the caller
func (s *Server) sendDocument(w http.ResponseWriter, r *http.Request, res *rendering.Result) {
	content, err := os.ReadFile(res.Path)
	if err != nil {
		s.errorFrom(w, r, &rendering.SaveError{Path: res.Path, Message: "failed to read rendered document", Cause: err})
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(res.Path)))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := bytes.NewReader(content).WriteTo(w); err != nil {
		log.Printf("[server] Error writing document %s: %v", res.Path, err)
	}
}
