package port

import (
	"context"

	"github.com/dreschagin/macro-watch/internal/application/dto"
)

// MetricsPublisher publishes run results to an external observability
// platform (Port). A run produces at most a handful of datapoints, so
// implementations publish synchronously, no buffering involved.
type MetricsPublisher interface {
	// PublishRun publishes every indicator value plus the aggregate severity
	PublishRun(ctx context.Context, report *dto.ReportDTO) error
}
