package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("j1", "d1", "gala.pdf", []byte("pdf"))
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %q/%q", job.Status, job.Phase)
	}
	if string(job.FileData()) != "pdf" {
		t.Errorf("expected file data, got %q", job.FileData())
	}
	if job.CreatedAt.IsZero() || !job.CreatedAt.Equal(job.UpdatedAt) {
		t.Error("expected matching created/updated timestamps")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("test-1", "doc-1", "a.txt", []byte("x"))

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusParsing, "parsing"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released at a terminal state")
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	for _, s := range []JobStatus{StatusCompleted, StatusFailed, StatusDupSkipped} {
		if !s.Terminal() {
			t.Errorf("expected %q to be terminal", s)
		}
	}
	for _, s := range []JobStatus{StatusQueued, StatusExtracting, StatusParsing, StatusStoring} {
		if s.Terminal() {
			t.Errorf("expected %q to be non-terminal", s)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("extract failed")
	job.AddError("store failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "extract failed" {
		t.Errorf("expected first error %q, got %q", "extract failed", snap.Progress.Errors[0])
	}
}

func TestJob_ProgressFields(t *testing.T) {
	job := &Job{ID: "p", UpdatedAt: time.Now()}
	job.SetPages(12, true)
	job.SetConfidence(86)
	job.SetContentHash("abc")

	snap := job.Snapshot()
	if snap.Progress.Pages != 12 || !snap.Progress.Truncated {
		t.Errorf("unexpected pages %+v", snap.Progress)
	}
	if snap.Progress.Confidence == nil || *snap.Progress.Confidence != 86 {
		t.Errorf("expected confidence 86, got %v", snap.Progress.Confidence)
	}
	if snap.ContentHash != "abc" {
		t.Errorf("expected hash abc, got %q", snap.ContentHash)
	}
}

func TestJob_MarkDuplicate(t *testing.T) {
	job := NewJob("j", "d", "a.txt", nil)
	job.MarkDuplicate("older")
	snap := job.Snapshot()
	if snap.Status != StatusDupSkipped || snap.DuplicateOf != "older" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestJob_SnapshotIsACopy(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if snap.Progress.Confidence != nil {
		t.Error("expected nil confidence before parsing")
	}

	job.AddError("later")
	if len(snap.Progress.Errors) != 0 {
		t.Error("expected earlier snapshot to be unaffected")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job left, got %d", store.Len())
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
