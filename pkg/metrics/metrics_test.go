package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.PageScrapesTotal.WithLabelValues(OutcomeSuccess).Inc()

	if got := testutil.ToFloat64(a.PageScrapesTotal.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(b.PageScrapesTotal.WithLabelValues(OutcomeSuccess)); got != 0 {
		t.Errorf("expected registries to be independent, got %v", got)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.BriefsTotal.WithLabelValues(OutcomeFailure).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(string(body), `content_briefs_total{outcome="failure"} 1`) {
		t.Errorf("expected brief counter in output, got:\n%s", body)
	}
}

func TestOutcome(t *testing.T) {
	if Outcome(nil) != OutcomeSuccess {
		t.Error("expected success for nil error")
	}
	if Outcome(errors.New("x")) != OutcomeFailure {
		t.Error("expected failure for non-nil error")
	}
}
