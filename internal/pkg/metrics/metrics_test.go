package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestCountersAreIndependentPerInstance(t *testing.T) {
	a, b := New(), New()

	a.CascadeRemoved.WithLabelValues("modality").Add(3)

	if got := testutil.ToFloat64(a.CascadeRemoved.WithLabelValues("modality")); got != 3 {
		t.Errorf("a = %v, want 3", got)
	}
	if got := testutil.ToFloat64(b.CascadeRemoved.WithLabelValues("modality")); got != 0 {
		t.Errorf("b = %v, want 0", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("/courses", "GET", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler(zerolog.Nop()).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `catalog_http_requests_total{method="GET",route="/courses",status="200"} 1`) {
		t.Errorf("missing request counter in:\n%s", body)
	}
}
