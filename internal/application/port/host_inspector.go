package port

import "context"

// HostInfo describes the machine a run executed on. Shown in the report
// footer and the daemon status endpoint.
type HostInfo struct {
	Hostname       string
	Platform       string
	UptimeHours    float64
	MemUsedPercent float64
}

// HostInspector collects host diagnostics (Port)
type HostInspector interface {
	// Inspect gathers current host information; failures degrade to an
	// empty HostInfo, diagnostics never fail a run
	Inspect(ctx context.Context) (HostInfo, error)
}
