package port

import (
	"context"
	"time"
)

// ReportMetadata is the index entry for one persisted report artifact.
type ReportMetadata struct {
	RunID         string
	GeneratedAt   time.Time
	Overall       string
	WarningCount  int
	CriticalCount int
	TotalKnown    int
	Subject       string
	ArtifactKey   string
}

// ReportMetadataRepository stores the run index for persisted reports (Port).
// Implementation lives in the Infrastructure layer (DynamoDB).
type ReportMetadataRepository interface {
	// Put stores one run index entry
	Put(ctx context.Context, meta ReportMetadata) error
}
