package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/briefgest/internal/brief"
	"github.com/dgallion1/briefgest/internal/export"
	"github.com/dgallion1/briefgest/internal/store"
	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleListBriefs lists stored briefs, newest first.
func (s *Server) handleListBriefs(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxListLimit)
	}

	briefs, err := s.store.List(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list briefs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	total, err := s.store.Count(r.Context())
	if err != nil {
		jsonError(w, "failed to count briefs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"briefs": briefs, "total": total})
}

type storedBrief struct {
	DocID      string          `json:"doc_id"`
	Filename   string          `json:"filename"`
	Confidence int             `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
	Brief      json.RawMessage `json:"brief"`
	Raw        *string         `json:"raw,omitempty"`
}

// handleGetBrief returns one stored brief.
func (s *Server) handleGetBrief(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	body := storedBrief{
		DocID:      rec.DocID,
		Filename:   rec.Filename,
		Confidence: rec.Confidence,
		CreatedAt:  rec.CreatedAt,
		Brief:      rec.BriefJSON,
	}
	if queryBool(r, "raw", s.cfg.IncludeRawDefault) {
		body.Raw = &rec.CanonicalText
	}
	writeJSON(w, http.StatusOK, body)
}

// handleExportBrief renders a stored brief as an XLSX workbook.
func (s *Server) handleExportBrief(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	var b brief.ParsedBrief
	if err := json.Unmarshal(rec.BriefJSON, &b); err != nil {
		jsonError(w, "stored brief is corrupt: "+err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := export.Workbook(rec.Filename, &b)
	if err != nil {
		if s.metrics != nil {
			s.metrics.Error("export")
		}
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, rec.DocID))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// handleDeleteBrief removes a stored brief.
func (s *Server) handleDeleteBrief(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	err := s.store.Delete(r.Context(), docID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "brief not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete brief: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("brief deleted", "doc_id", docID)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}

func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	docID := chi.URLParam(r, "docID")
	rec, err := s.store.Get(r.Context(), docID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "brief not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		jsonError(w, "failed to load brief: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return rec, true
}
