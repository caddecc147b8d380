// Package scheduler runs the periodic lifecycle passes using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"servit/internal/shared/biztime"
	"servit/internal/shared/logger"
)

// BatchJob is one scheduled pass over due work. Execute processes a batch and
// returns the number of items handled.
type BatchJob interface {
	Name() string
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the single gocron scheduler instance for the worker
// process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterQuotationJobs registers the quotation lifecycle tick. Each tick
// runs the expiry pass first and the reminder pass second, so a quotation
// that is both overdue and reminder-due is expired, not reminded.
func (m *SchedulerManager) RegisterQuotationJobs(
	expiryJob BatchJob,
	reminderJob BatchJob,
	intervalMinutes int,
) error {
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	interval := time.Duration(intervalMinutes) * time.Minute

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.runQuotationPass(ctx, expiryJob, reminderJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("quotation", "expiry", "reminder"),
		gocron.WithName("quotation-lifecycle"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered quotation lifecycle jobs", "interval", interval)
	return nil
}

func (m *SchedulerManager) runQuotationPass(ctx context.Context, expiryJob, reminderJob BatchJob) {
	m.logger.Debugw("quotation lifecycle pass started")

	startTime := biztime.NowUTC()

	for _, job := range []BatchJob{expiryJob, reminderJob} {
		count, err := job.Execute(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.Errorw("scheduled pass failed",
				"job", job.Name(),
				"error", err,
				"duration", time.Since(startTime),
			)
			continue
		}
		if count > 0 {
			m.logger.Infow("scheduled pass completed",
				"job", job.Name(),
				"count", count,
				"duration", time.Since(startTime),
			)
		} else {
			m.logger.Debugw("scheduled pass found no due items", "job", job.Name())
		}
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted reports whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
