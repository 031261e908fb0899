package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
)

// Job names used in logs
const (
	JobVerifyRetry = "verify_retry"
	JobSettleRetry = "settle_retry"
	JobExpireStale = "expire_stale"
)

// Config holds the cron specs of the maintenance jobs.
// Specs accept an optional seconds field and descriptors such as "@every 5m".
type Config struct {
	VerifyRetrySpec string
	SettleRetrySpec string
	ExpirySpec      string
	// JobTimeout bounds one run of a job
	JobTimeout time.Duration
}

// Scheduler runs the maintenance sweeps on a cron schedule
type Scheduler struct {
	cron        *cron.Cron
	maintenance usecase.MaintenanceUseCase
	logger      coreport.Logger
	timeout     time.Duration
}

// New registers the maintenance jobs. An invalid spec is returned as an error.
func New(cfg Config, maintenance usecase.MaintenanceUseCase, logger coreport.Logger) (*Scheduler, error) {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		maintenance: maintenance,
		logger:      logger,
		timeout:     cfg.JobTimeout,
	}

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) (int, error)
	}{
		{JobVerifyRetry, cfg.VerifyRetrySpec, maintenance.RetryStuckVerifications},
		{JobSettleRetry, cfg.SettleRetrySpec, maintenance.RetryStuckSettlements},
		{JobExpireStale, cfg.ExpirySpec, maintenance.ExpireStale},
	}
	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() { s.Run(job.name, job.run) }); err != nil {
			return nil, fmt.Errorf("invalid schedule %q for %s: %w", job.spec, job.name, err)
		}
	}

	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.logger.Info("Starting maintenance scheduler", map[string]any{"jobs": len(s.cron.Entries())})
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx ends
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Maintenance scheduler stopped", nil)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for maintenance jobs: %w", ctx.Err())
	}
}

// Run executes one job with the job timeout and logs its result
func (s *Scheduler) Run(name string, job func(ctx context.Context) (int, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Maintenance job panicked", map[string]any{
				"job":   name,
				"panic": fmt.Sprint(r),
			})
		}
	}()

	count, err := job(ctx)
	if err != nil {
		s.logger.Error("Maintenance job failed", map[string]any{
			"job":       name,
			"processed": count,
			"error":     err.Error(),
		})
		return
	}

	s.logger.Debug("Maintenance job finished", map[string]any{
		"job":       name,
		"processed": count,
	})
}
