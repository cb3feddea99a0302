package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/dgallion1/briefgest/internal/brief"
	"github.com/dgallion1/briefgest/internal/metrics"
	"github.com/dgallion1/briefgest/internal/source"
	"github.com/dgallion1/briefgest/internal/stats"
)

// Validator checks a parsed brief's wire shape and returns its JSON.
type Validator interface {
	Validate(b *brief.ParsedBrief) ([]byte, error)
}

// Parsed is the outcome of running one document through the engine.
type Parsed struct {
	Document  *source.Document
	Result    brief.Result
	JSON      []byte
	Truncated bool
	Elapsed   time.Duration
}

// Pages returns the page texts that were fed to the engine.
func (p *Parsed) Pages(maxPages int) []string {
	pages := p.Document.Pages
	if maxPages > 0 && len(pages) > maxPages {
		pages = pages[:maxPages]
	}
	return pages
}

// Parser wires text extraction, the brief engine and shape validation. One
// Parser is shared by the HTTP handlers and the workers.
type Parser struct {
	engine    *brief.Engine
	validator Validator
	opts      source.Options
	maxPages  int
	metrics   *metrics.Metrics
	stats     *stats.ParseStats
}

// ParserConfig holds the Parser's collaborators. Metrics and Stats are optional.
type ParserConfig struct {
	Engine    *brief.Engine
	Validator Validator
	Source    source.Options
	MaxPages  int
	Metrics   *metrics.Metrics
	Stats     *stats.ParseStats
}

func NewParser(cfg ParserConfig) *Parser {
	if cfg.Engine == nil {
		cfg.Engine = brief.New(brief.DefaultRules())
	}
	return &Parser{
		engine:    cfg.Engine,
		validator: cfg.Validator,
		opts:      cfg.Source,
		maxPages:  cfg.MaxPages,
		metrics:   cfg.Metrics,
		stats:     cfg.Stats,
	}
}

// MaxPages returns the configured page cap.
func (p *Parser) MaxPages() int {
	return p.maxPages
}

// Engine returns the brief engine.
func (p *Parser) Engine() *brief.Engine {
	return p.engine
}

// Extract decodes a file into page text.
func (p *Parser) Extract(r io.Reader, filename string) (*source.Document, error) {
	ex, err := source.ForFile(filename, p.opts)
	if err != nil {
		p.countError("extract")
		return nil, err
	}
	doc, err := ex.Extract(r, filename)
	if err != nil {
		p.countError("extract")
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	return doc, nil
}

// Parse runs the engine over an extracted document and validates the result.
func (p *Parser) Parse(doc *source.Document) (*Parsed, error) {
	start := time.Now()
	text, truncated := doc.Text(p.maxPages)
	res := p.engine.Parse(text)

	out := &Parsed{Document: doc, Result: res, Truncated: truncated}
	if p.validator != nil {
		data, err := p.validator.Validate(res.Brief)
		if err != nil {
			p.countError("validate")
			return nil, err
		}
		out.JSON = data
	}
	out.Elapsed = time.Since(start)

	if p.stats != nil {
		p.stats.Record(out.Elapsed, res.Brief.Confidence.Overall)
	}
	if p.metrics != nil && truncated {
		p.metrics.TruncatedPages.Inc()
	}
	return out, nil
}

// ParseFile extracts and parses in one step.
func (p *Parser) ParseFile(data []byte, filename string) (*Parsed, error) {
	doc, err := p.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(doc)
}

// ParseText parses pasted text as a single-page document.
func (p *Parser) ParseText(text, title string) (*Parsed, error) {
	return p.Parse(&source.Document{Title: title, Pages: []string{text}})
}

// Observe records the outcome of a finished parse.
func (p *Parser) Observe(outcome string, parsed *Parsed) {
	if p.metrics != nil {
		p.metrics.ObserveParse(outcome, parsed.Elapsed, parsed.Result.Brief.Confidence.Overall)
	}
}

func (p *Parser) countError(op string) {
	if p.metrics != nil {
		p.metrics.Error(op)
	}
}
