package rendering

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/jonathan/resume-formatter/internal/types"
)

// DefaultOutputDir is the base directory for generated documents
const DefaultOutputDir = "generated_resumes"

// Options configures a Renderer
type Options struct {
	// OutputDir is the base directory; documents go into a dated subfolder
	OutputDir string
	// Now supplies the timestamp used in output paths. Defaults to time.Now.
	Now func() time.Time
}

// Renderer builds and saves resume documents. It holds no per-render state
// and is safe for concurrent use.
type Renderer struct {
	outputDir string
	now       func() time.Time
}

// Result describes a saved document
type Result struct {
	Path            string   `json:"path"`
	Style           string   `json:"style"`
	Paragraphs      int      `json:"paragraphs"`
	HighlightedRuns int      `json:"highlighted_runs"`
	Keywords        []string `json:"keywords,omitempty"`
}

// NewRenderer creates a renderer
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{outputDir: opts.OutputDir, now: opts.Now}
	if r.outputDir == "" {
		r.outputDir = DefaultOutputDir
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// OutputDir returns the base output directory
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// Build lays out the record as a document without touching the file system.
// The same inputs always produce the same document.
func (r *Renderer) Build(record *types.ResumeRecord, cfg Config, set keywords.Set) (*document.Document, error) {
	doc, _, err := build(record, cfg, set)
	return doc, err
}

func build(record *types.ResumeRecord, cfg Config, set keywords.Set) (*document.Document, int, error) {
	if err := types.ValidateRecord(record); err != nil {
		return nil, 0, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	b := newBuilder(cfg, set.Terms())
	doc := b.build(record)
	return doc, b.highlighted, nil
}

// Render builds the document and saves it under the output directory.
//
// A record without a name fails with *types.ValidationError before anything
// is written. File system failures are reported as *SaveError.
func (r *Renderer) Render(record *types.ResumeRecord, cfg Config, set keywords.Set) (*Result, error) {
	doc, highlighted, err := build(record, cfg, set)
	if err != nil {
		return nil, err
	}

	preferred := OutputPath(r.outputDir, record.Name, cfg.FileSuffix, r.now())
	path, err := saveDocument(doc, preferred)
	if err != nil {
		return nil, err
	}

	log.Printf("[render] Wrote %s (style %s, %d keywords, %d highlighted runs)", path, cfg.Name, set.Len(), highlighted)

	return &Result{
		Path:            path,
		Style:           cfg.Name,
		Paragraphs:      len(doc.Paragraphs()),
		HighlightedRuns: highlighted,
		Keywords:        set.Terms(),
	}, nil
}

// RenderAll renders the record once per config in parallel. Results are
// returned in config order. The first failure cancels renders that have
// not started yet.
func RenderAll(ctx context.Context, r *Renderer, record *types.ResumeRecord, cfgs []Config, set keywords.Set) ([]*Result, error) {
	if err := types.ValidateRecord(record); err != nil {
		return nil, err
	}

	results := make([]*Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Render(record, cfg, set)
			if err != nil {
				return &RenderError{Style: cfg.Name, Message: "render failed", Cause: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
