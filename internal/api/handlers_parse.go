package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/briefgest/internal/pipeline"
	"github.com/dgallion1/briefgest/internal/source"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

type parseResponse struct {
	Brief     json.RawMessage `json:"brief"`
	PageCount int             `json:"page_count"`
	Truncated bool            `json:"truncated"`
	ElapsedMs int64           `json:"elapsed_ms"`
	Raw       *string         `json:"raw,omitempty"`
	Pages     []string        `json:"pages,omitempty"`
}

// handleParse parses one brief synchronously and stores nothing.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	err := r.ParseMultipartForm(32 << 20)
	switch {
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			jsonError(w, "invalid form: "+err.Error(), http.StatusBadRequest)
			return
		}
	case err != nil:
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	default:
		defer r.MultipartForm.RemoveAll()
	}

	includeRaw := queryBool(r, "raw", s.cfg.IncludeRawDefault)
	includePages := queryBool(r, "pages", false)
	parser := s.orchestrator.Parser()

	var run func() (*pipeline.Parsed, error)
	if r.MultipartForm != nil && len(r.MultipartForm.File["file"]) > 0 {
		filename, data, err := s.readUpload(r.MultipartForm.File["file"][0])
		if err != nil {
			jsonError(w, err.Error(), uploadStatus(err))
			return
		}
		run = func() (*pipeline.Parsed, error) { return parser.ParseFile(data, filename) }
	} else if text := r.FormValue("text"); text != "" {
		if int64(len(text)) > s.cfg.MaxUploadBytes {
			jsonError(w, errFileTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		title := r.FormValue("title")
		run = func() (*pipeline.Parsed, error) { return parser.ParseText(text, title) }
	} else {
		jsonError(w, "file or text is required", http.StatusBadRequest)
		return
	}

	parsed, err := s.runWithTimeout(r.Context(), run)
	if err != nil {
		jsonError(w, err.Error(), parseStatus(err))
		return
	}
	parser.Observe("parsed", parsed)

	body := parseResponse{
		Brief:     parsed.JSON,
		PageCount: parsed.Document.PageCount(),
		Truncated: parsed.Truncated,
		ElapsedMs: parsed.Elapsed.Milliseconds(),
	}
	if body.Brief == nil {
		data, err := json.Marshal(parsed.Result.Brief)
		if err != nil {
			jsonError(w, "failed to encode brief", http.StatusInternalServerError)
			return
		}
		body.Brief = data
	}
	if includeRaw {
		body.Raw = &parsed.Result.Canonical
	}
	if includePages {
		body.Pages = parsed.Pages(parser.MaxPages())
	}
	writeJSON(w, http.StatusOK, body)
}

type parseOutcome struct {
	parsed *pipeline.Parsed
	err    error
}

// runWithTimeout bounds a synchronous parse by PARSE_TIMEOUT and the request context.
func (s *Server) runWithTimeout(ctx context.Context, run func() (*pipeline.Parsed, error)) (*pipeline.Parsed, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ParseTimeout)
	defer cancel()

	done := make(chan parseOutcome, 1)
	go func() {
		parsed, err := run()
		done <- parseOutcome{parsed, err}
	}()

	select {
	case out := <-done:
		return out.parsed, out.err
	case <-ctx.Done():
		s.log.Warn("parse abandoned", "error", ctx.Err(), "timeout", s.cfg.ParseTimeout)
		return nil, ctx.Err()
	}
}

func parseStatus(err error) int {
	var verr *jsonschema.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, source.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, source.ErrEmptyText):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func queryBool(r *http.Request, key string, fallback bool) bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
