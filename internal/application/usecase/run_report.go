package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dreschagin/macro-watch/internal/application/dto"
	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/domain/entity"
	"github.com/dreschagin/macro-watch/internal/domain/repository"
	"github.com/dreschagin/macro-watch/internal/domain/service"
	"github.com/dreschagin/macro-watch/internal/domain/valueobject"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// SourceBinding pairs one catalogue entry with the adapter that serves it.
type SourceBinding struct {
	Spec    valueobject.IndicatorSpec
	Adapter port.SourceAdapter
}

// RunReportResult carries everything one run produced.
type RunReportResult struct {
	Report           *dto.ReportDTO
	Document         []byte
	ContentType      string
	Subject          string
	ArtifactLocation string
}

// RunReportConfig tunes the run pipeline.
type RunReportConfig struct {
	Concurrency  int    // parallel fetches; results are reassembled in catalogue order
	EventSubject string // broker subject for run events
}

// RunReportUseCase coordinates one monitoring run: fetch every indicator,
// evaluate, resolve the aggregate, render the report, persist and deliver
// it. Only a renderer failure fails the run; a failed fetch degrades its one
// indicator and every side channel (delivery, events, history, metrics) is
// best effort.
type RunReportUseCase struct {
	sources  []SourceBinding
	eval     *service.Evaluator
	resolver *service.AggregateResolver
	renderer port.ReportRenderer
	storages []port.ArtifactStorage
	delivery port.ReportDelivery
	events   port.EventPublisher
	metrics  port.MetricsPublisher
	history  repository.RunRepository
	index    port.ReportMetadataRepository
	host     port.HostInspector
	cfg      RunReportConfig
	log      *logger.Logger
}

// NewRunReportUseCase creates the use case. Optional collaborators
// (delivery, events, metrics, history, index, host) may be nil; extra
// storages beyond the first are treated as replicas.
func NewRunReportUseCase(
	sources []SourceBinding,
	renderer port.ReportRenderer,
	storages []port.ArtifactStorage,
	delivery port.ReportDelivery,
	events port.EventPublisher,
	metrics port.MetricsPublisher,
	history repository.RunRepository,
	index port.ReportMetadataRepository,
	host port.HostInspector,
	cfg RunReportConfig,
	log *logger.Logger,
) *RunReportUseCase {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.EventSubject == "" {
		cfg.EventSubject = "macrowatch.runs"
	}

	return &RunReportUseCase{
		sources:  sources,
		eval:     service.NewEvaluator(),
		resolver: service.NewAggregateResolver(),
		renderer: renderer,
		storages: storages,
		delivery: delivery,
		events:   events,
		metrics:  metrics,
		history:  history,
		index:    index,
		host:     host,
		cfg:      cfg,
		log:      log,
	}
}

// Execute performs one full run.
func (uc *RunReportUseCase) Execute(ctx context.Context) (*RunReportResult, error) {
	runID := uuid.New().String()
	generatedAt := time.Now().UTC()

	uc.log.Info("Starting monitoring run", "run_id", runID, "indicators", len(uc.sources))

	// 1. Fetch all sources, concurrently but reassembled in catalogue order
	results := uc.fetchAll(ctx)

	// 2. Evaluate each indicator; a failed fetch degrades to unknown
	assessments := make([]*entity.Assessment, 0, len(uc.sources))
	for i, binding := range uc.sources {
		assessment := uc.eval.Evaluate(binding.Spec, results[i].Reading())
		assessments = append(assessments, assessment)

		if results[i].Success {
			uc.log.Info("Indicator evaluated",
				"indicator", binding.Spec.ID,
				"status", assessment.Status().String(),
				"value", results[i].Value,
			)
		} else {
			uc.log.Warn("Indicator fetch failed",
				"indicator", binding.Spec.ID,
				"source", results[i].Source,
				"error", results[i].Err,
			)
		}
	}

	// 3. Resolve the aggregate severity
	aggregate := uc.resolver.Resolve(assessments)
	uc.log.Info("Aggregate resolved",
		"overall", aggregate.Overall.String(),
		"critical_count", aggregate.CriticalCount,
		"warning_count", aggregate.WarningCount,
		"total_known", aggregate.TotalKnown,
	)

	// 4. Build the report DTO
	report := dto.NewReportDTO(runID, generatedAt, aggregate, assessments)
	report.Host = uc.inspectHost(ctx)

	// 5. Render; this is the one step that can fail the run
	document, contentType, err := uc.renderer.Render(report)
	if err != nil {
		uc.log.Error("Failed to render report", err, "run_id", runID)
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	result := &RunReportResult{
		Report:      report,
		Document:    document,
		ContentType: contentType,
		Subject:     report.Subject(),
	}

	// 6. Persist the artifact; the first successful location is reported
	artifactName := fmt.Sprintf("macro_watch_%s.html", generatedAt.Format("20060102T150405Z"))
	for _, storage := range uc.storages {
		location, err := storage.Save(ctx, artifactName, contentType, document)
		if err != nil {
			uc.log.Error("Failed to persist report artifact", err, "name", artifactName)
			continue
		}
		if result.ArtifactLocation == "" {
			result.ArtifactLocation = location
		}
		uc.log.Info("Report artifact persisted", "location", location)
	}

	// 7. Deliver; failure never fails the run
	if uc.delivery != nil {
		if err := uc.delivery.Deliver(ctx, result.Subject, document); err != nil {
			uc.log.Error("Failed to deliver report", err, "subject", result.Subject)
		} else {
			uc.log.Info("Report delivered", "subject", result.Subject)
		}
	}

	// 8. Best-effort side channels
	uc.publishSideChannels(ctx, runID, generatedAt, aggregate, assessments, result)

	return result, nil
}

// fetchAll runs every adapter with bounded concurrency. Each result lands
// at its own index, so catalogue order survives regardless of completion
// order.
func (uc *RunReportUseCase) fetchAll(ctx context.Context) []port.FetchResult {
	results := make([]port.FetchResult, len(uc.sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.cfg.Concurrency)

	for i, binding := range uc.sources {
		wg.Add(1)
		go func(i int, adapter port.SourceAdapter) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = adapter.Fetch(ctx)
		}(i, binding.Adapter)
	}

	wg.Wait()
	return results
}

func (uc *RunReportUseCase) inspectHost(ctx context.Context) *dto.HostDTO {
	if uc.host == nil {
		return nil
	}

	info, err := uc.host.Inspect(ctx)
	if err != nil {
		uc.log.Warn("Host inspection failed", "error", err.Error())
		return nil
	}

	return &dto.HostDTO{
		Hostname:       info.Hostname,
		Platform:       info.Platform,
		UptimeHours:    info.UptimeHours,
		MemUsedPercent: info.MemUsedPercent,
	}
}

func (uc *RunReportUseCase) publishSideChannels(
	ctx context.Context,
	runID string,
	generatedAt time.Time,
	aggregate service.Aggregate,
	assessments []*entity.Assessment,
	result *RunReportResult,
) {
	if uc.history != nil {
		if err := uc.history.SaveRun(ctx, runID, generatedAt, aggregate, assessments); err != nil {
			uc.log.Error("Failed to save run history", err, "run_id", runID)
		}
	}

	if uc.index != nil {
		meta := port.ReportMetadata{
			RunID:         runID,
			GeneratedAt:   generatedAt,
			Overall:       aggregate.Overall.String(),
			WarningCount:  aggregate.WarningCount,
			CriticalCount: aggregate.CriticalCount,
			TotalKnown:    aggregate.TotalKnown,
			Subject:       result.Subject,
			ArtifactKey:   result.ArtifactLocation,
		}
		if err := uc.index.Put(ctx, meta); err != nil {
			uc.log.Error("Failed to index report", err, "run_id", runID)
		}
	}

	if uc.metrics != nil {
		if err := uc.metrics.PublishRun(ctx, result.Report); err != nil {
			uc.log.Error("Failed to publish run metrics", err, "run_id", runID)
		}
	}

	if uc.events != nil {
		if err := uc.events.PublishEvent(ctx, uc.cfg.EventSubject, result.Report); err != nil {
			uc.log.Error("Failed to publish run event", err, "run_id", runID)
		}
	}
}
