package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

// tehranOffset is used when the host has no tzdata for Asia/Tehran.
// Iran dropped daylight saving in 2022, so the fixed offset is exact.
const tehranOffset = 3*60*60 + 30*60

// RealTimeProvider implements the TimeProvider interface on the wall clock.
// Now reports time in the configured location because bank requests carry
// local date and time fields.
type RealTimeProvider struct {
	loc *time.Location
}

// NewRealTimeProvider creates a time provider in the given location, UTC when nil
func NewRealTimeProvider(loc *time.Location) core.TimeProvider {
	if loc == nil {
		loc = time.UTC
	}
	return &RealTimeProvider{loc: loc}
}

// LoadLocation resolves an IANA zone name, falling back to a fixed Tehran offset
// for "Asia/Tehran" and to UTC for anything else that cannot be loaded
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if name == "Asia/Tehran" {
		return time.FixedZone("IRST", tehranOffset)
	}
	return time.UTC
}

// Now returns the current time in the provider's location
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.loc)
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// Until returns the duration until t
func (p *RealTimeProvider) Until(t time.Time) core.Duration {
	return core.Duration(time.Until(t))
}

// Sleep pauses the current goroutine for the specified duration
func (p *RealTimeProvider) Sleep(d core.Duration) {
	time.Sleep(d.Std())
}

// WithTimeout bounds ctx by timeout; a non-positive timeout only adds cancellation
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout.Std())
}

// ParseDuration parses a duration string
func (p *RealTimeProvider) ParseDuration(s string) (core.Duration, error) {
	d, err := time.ParseDuration(s)
	return core.Duration(d), err
}
