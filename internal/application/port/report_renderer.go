package port

import "github.com/dreschagin/macro-watch/internal/application/dto"

// ReportRenderer turns a completed run into a document artifact (Port).
// The renderer must render every assessment exactly once, in catalogue
// order, and must keep informational entries visually distinct without
// letting them affect the aggregate wording.
type ReportRenderer interface {
	// Render produces the report document and its content type
	Render(report *dto.ReportDTO) ([]byte, string, error)
}
