package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/briefgest/internal/store"
)

// BriefStore is the persistence the worker needs.
type BriefStore interface {
	FindByHash(ctx context.Context, hash string) (string, bool, error)
	Put(ctx context.Context, r store.Record) error
}

// Worker processes a single brief job.
type Worker struct {
	parser    *Parser
	store     BriefStore
	log       *slog.Logger
	retryable func(error) bool
}

func NewWorker(parser *Parser, st BriefStore, log *slog.Logger) *Worker {
	return &Worker{
		parser:    parser,
		store:     st,
		log:       log,
		retryable: store.IsBusy,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting")
	doc, err := w.parser.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extract failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: Parse
	job.SetStatus(StatusParsing, "parsing")
	parsed, err := w.parser.Parse(doc)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	truncated := parsed.Truncated
	job.SetPages(doc.PageCount(), truncated)
	b := parsed.Result.Brief
	job.SetConfidence(b.Confidence.Overall)
	if truncated {
		log.Warn("page cap applied", "pages", doc.PageCount(), "max_pages", w.parser.MaxPages())
	}

	// Phase 2.5: Dedup on canonical text
	hash := ContentHashHex([]byte(parsed.Result.Canonical))
	job.SetContentHash(hash)
	existing, found, err := w.store.FindByHash(ctx, hash)
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if found {
		log.Info("duplicate brief, skipping", "existing_doc_id", existing)
		w.parser.Observe("duplicate", parsed)
		job.MarkDuplicate(existing)
		return
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	rec := store.Record{
		DocID:         job.DocID,
		Filename:      job.Filename,
		ContentHash:   hash,
		BookingNumber: b.BookingNumber,
		Confidence:    b.Confidence.Overall,
		BriefJSON:     parsed.JSON,
		CanonicalText: parsed.Result.Canonical,
		CreatedAt:     job.CreatedAt,
	}
	err = withRetry(ctx, w.retryable, func() error { return w.store.Put(ctx, rec) })
	if errors.Is(err, store.ErrDuplicate) {
		// Another worker stored the same text between the check and the put.
		existing, _, findErr := w.store.FindByHash(ctx, hash)
		if findErr != nil {
			log.Warn("duplicate lookup failed", "error", findErr)
		}
		log.Info("duplicate brief, skipping", "existing_doc_id", existing)
		w.parser.Observe("duplicate", parsed)
		job.MarkDuplicate(existing)
		return
	}
	if err != nil {
		log.Error("store failed", "error", err)
		w.parser.countError("store")
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	w.parser.Observe("stored", parsed)
	log.Info("brief stored",
		"confidence", b.Confidence.Overall,
		"sites", len(b.Sites),
		"contacts", len(b.Contacts),
		"elapsed_ms", parsed.Elapsed.Milliseconds(),
		"age_ms", time.Since(job.CreatedAt).Milliseconds(),
	)
	job.SetStatus(StatusCompleted, "done")
}
