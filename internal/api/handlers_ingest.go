package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/briefgest/internal/pipeline"
	"github.com/dgallion1/briefgest/internal/source"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// errFileTooLarge marks an upload over MAX_UPLOAD_BYTES.
var errFileTooLarge = errors.New("file exceeds max size")

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}
	filename, data, err := s.readUpload(fhs[0])
	if err != nil {
		jsonError(w, err.Error(), uploadStatus(err))
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = newDocID()
	}

	job := pipeline.NewJob(uuid.NewString(), docID, filename, data)
	if err := s.submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.log.Info("brief queued", "job_id", job.ID, "doc_id", docID, "filename", filename, "bytes", len(data))

	writeJSON(w, http.StatusAccepted, queuedResponse(job))
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	body := map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"filename": snap.Filename,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	}
	if snap.DuplicateOf != "" {
		body["duplicate_of"] = snap.DuplicateOf
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleBatchIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename, data, err := s.readUpload(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(uuid.NewString(), newDocID(), filename, data)
		if err := s.submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		res := queuedResponse(job)
		res["filename"] = filename
		results = append(results, res)
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

// readUpload validates and reads one uploaded file. The sanitized filename is
// returned even on error so batch results can name the failing file.
func (s *Server) readUpload(fh *multipart.FileHeader) (string, []byte, error) {
	filename := sanitizeFilename(fh.Filename)
	if !source.IsSupportedExtension(filename) {
		return filename, nil, fmt.Errorf("%w: %s", source.ErrUnsupportedFormat, filepath.Ext(filename))
	}

	f, err := fh.Open()
	if err != nil {
		return filename, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return filename, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return filename, nil, fmt.Errorf("%w (%d bytes)", errFileTooLarge, s.cfg.MaxUploadBytes)
	}
	return filename, data, nil
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) submit(job *pipeline.Job) error {
	if err := s.orchestrator.Submit(job); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.JobsSubmitted.Inc()
	}
	return nil
}

func queuedResponse(job *pipeline.Job) map[string]any {
	snap := job.Snapshot()
	return map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/briefs/jobs/%s", snap.ID),
	}
}

// newDocID returns a time-ordered id so stored briefs list in arrival order.
func newDocID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
