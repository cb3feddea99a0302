package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveParse(t *testing.T) {
	m := NewMetrics("test", nil)
	m.ObserveParse("stored", 20*time.Millisecond, 86)
	m.ObserveParse("stored", 10*time.Millisecond, 14)
	m.ObserveParse("duplicate", time.Millisecond, 100)

	if got := testutil.ToFloat64(m.BriefsParsed.WithLabelValues("stored")); got != 2 {
		t.Errorf("expected 2 stored, got %v", got)
	}
	if got := testutil.ToFloat64(m.BriefsParsed.WithLabelValues("duplicate")); got != 1 {
		t.Errorf("expected 1 duplicate, got %v", got)
	}
}

func TestError(t *testing.T) {
	m := NewMetrics("test", nil)
	m.Error("extract")
	m.Error("extract")
	if got := testutil.ToFloat64(m.ErrorsCount.WithLabelValues("extract")); got != 2 {
		t.Errorf("expected 2 extract errors, got %v", got)
	}
}

func TestQueueDepthGauge(t *testing.T) {
	depth := 3
	m := NewMetrics("test", func() int { return depth })
	if got := testutil.ToFloat64(m.QueueDepth); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	depth = 0
	if got := testutil.ToFloat64(m.QueueDepth); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := NewMetrics("briefgest", nil)
	m.JobsSubmitted.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(string(body), "briefgest_jobs_submitted_total 1") {
		t.Errorf("expected jobs counter in exposition, got:\n%s", body)
	}
}

func TestIndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	NewMetrics("dup", nil)
	NewMetrics("dup", nil)
}
