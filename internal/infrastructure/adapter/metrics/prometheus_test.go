package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics()

	m.TransitionRecorded("mellat", "pending", "ref_id_obtained")
	m.TransitionRecorded("mellat", "pending", "ref_id_obtained")
	m.FailureRecorded("sadad", "verify", "declined")
	m.RemoteCallObserved("mellat", "bpPayRequest", "ok", 300*time.Millisecond)
	m.RemoteCallObserved("mellat", "bpPayRequest", "timeout", 20*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("mellat", "pending", "ref_id_obtained")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("sadad", "verify", "declined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteCalls.WithLabelValues("mellat", "bpPayRequest", "timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.remoteTime))

	t.Run("Handler exposes the private registry", func(t *testing.T) {
		m.HTTPRequestObserved("GET", "/payments/:id", "200", 5*time.Millisecond)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		text := string(body)
		assert.True(t, strings.Contains(text, `payment_gateway_transitions_total{from="pending",gateway="mellat",to="ref_id_obtained"} 2`))
		assert.True(t, strings.Contains(text, "payment_gateway_http_request_duration_seconds_count"))
		assert.True(t, strings.Contains(text, "go_goroutines"))
	})
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()
	assert.NotPanics(t, func() {
		m.TransitionRecorded("mellat", "pending", "failed")
		m.FailureRecorded("mellat", "initiate", "unknown")
		m.RemoteCallObserved("mellat", "bpPayRequest", "ok", time.Second)
	})
}
