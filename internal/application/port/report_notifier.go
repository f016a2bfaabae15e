package port

import "github.com/dreschagin/macro-watch/internal/application/dto"

// ReportNotifier pushes completed reports to connected clients (Port).
// Implementation lives in the Infrastructure layer (WebSocket Hub), used by
// the daemon runner after every cycle.
type ReportNotifier interface {
	// Broadcast sends the report to all connected clients
	Broadcast(report *dto.ReportDTO)

	// ClientCount returns the number of connected clients
	ClientCount() int
}
