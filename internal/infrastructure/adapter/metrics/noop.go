package metrics

import (
	"time"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

// NoopMetrics discards every observation
type NoopMetrics struct{}

var _ core.Metrics = NoopMetrics{}

// NewNoopMetrics is used when metrics are disabled and in tests
func NewNoopMetrics() core.Metrics { return NoopMetrics{} }

func (NoopMetrics) TransitionRecorded(string, string, string)                {}
func (NoopMetrics) FailureRecorded(string, string, string)                   {}
func (NoopMetrics) RemoteCallObserved(string, string, string, time.Duration) {}
