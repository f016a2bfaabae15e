package repository

import (
	"context"
	"time"

	"github.com/dreschagin/macro-watch/internal/domain/entity"
	"github.com/dreschagin/macro-watch/internal/domain/service"
)

// RunRepository persists run history for auditing (Repository).
// Implementation lives in the Infrastructure layer. History is a write-only
// side channel: the rendered report stays the source of truth and a save
// failure never fails the run.
type RunRepository interface {
	// SaveRun stores the aggregate outcome and every assessment of one run
	SaveRun(
		ctx context.Context,
		runID string,
		generatedAt time.Time,
		aggregate service.Aggregate,
		assessments []*entity.Assessment,
	) error
}
