package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dreschagin/macro-watch/internal/application/dto"
	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/application/usecase"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// Snapshot is the runner state exposed over HTTP.
type Snapshot struct {
	StartedAt  time.Time      `json:"started_at"`
	Interval   time.Duration  `json:"interval"`
	LastRunAt  time.Time      `json:"last_run_at"`
	LastError  string         `json:"last_error,omitempty"`
	LastReport *dto.ReportDTO `json:"last_report,omitempty"`
}

// Runner drives the report pipeline on a fixed interval and keeps the
// latest result for the HTTP surface. runMu serializes runs so a manual
// trigger cannot overlap a scheduled one.
type Runner struct {
	uc       *usecase.RunReportUseCase
	notifier port.ReportNotifier
	log      *logger.Logger
	interval time.Duration

	runMu sync.Mutex

	mu           sync.RWMutex
	startedAt    time.Time
	lastRunAt    time.Time
	lastError    string
	lastReport   *dto.ReportDTO
	lastDocument []byte
}

func NewRunner(uc *usecase.RunReportUseCase, notifier port.ReportNotifier, log *logger.Logger, interval time.Duration) *Runner {
	return &Runner{
		uc:        uc,
		notifier:  notifier,
		log:       log,
		interval:  interval,
		startedAt: time.Now(),
	}
}

// Start runs one cycle immediately, then every interval until ctx ends
func (r *Runner) Start(ctx context.Context) {
	if _, err := r.RunOnce(ctx); err != nil {
		r.log.Error("Initial run failed", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				// RunOnce already stores error state and logs context.
				continue
			}
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce executes one full monitoring run
func (r *Runner) RunOnce(ctx context.Context) (*dto.ReportDTO, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	result, err := r.uc.Execute(ctx)
	runAt := time.Now()

	if err != nil {
		wrappedErr := fmt.Errorf("monitoring run failed: %w", err)
		r.updateFailure(runAt, wrappedErr)
		r.log.Error("Monitoring run failed", wrappedErr)
		return nil, wrappedErr
	}

	r.updateSuccess(runAt, result.Report, result.Document)

	if r.notifier != nil {
		r.notifier.Broadcast(result.Report)
	}

	r.log.Info("Monitoring run completed",
		"run_id", result.Report.RunID,
		"overall", result.Report.Overall,
		"critical_count", result.Report.CriticalCount,
		"warning_count", result.Report.WarningCount,
		"subscribers", r.subscriberCount(),
	)

	return result.Report, nil
}

// Snapshot returns a copy of the current runner state
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Snapshot{
		StartedAt:  r.startedAt,
		Interval:   r.interval,
		LastRunAt:  r.lastRunAt,
		LastError:  r.lastError,
		LastReport: r.lastReport,
	}
}

// LastDocument returns the most recently rendered report document
func (r *Runner) LastDocument() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]byte(nil), r.lastDocument...)
}

func (r *Runner) subscriberCount() int {
	if r.notifier == nil {
		return 0
	}
	return r.notifier.ClientCount()
}

func (r *Runner) updateFailure(runAt time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastRunAt = runAt
	r.lastError = err.Error()
}

func (r *Runner) updateSuccess(runAt time.Time, report *dto.ReportDTO, document []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastRunAt = runAt
	r.lastError = ""
	r.lastReport = report
	r.lastDocument = append([]byte(nil), document...)
}
