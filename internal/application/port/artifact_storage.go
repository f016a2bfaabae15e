package port

import "context"

// ArtifactStorage persists rendered report documents (Port).
// Implementations: local filesystem (always on) and S3 (optional).
type ArtifactStorage interface {
	// Save stores the document under the given name and returns its
	// location (file path or URL)
	Save(ctx context.Context, name, contentType string, document []byte) (string, error)
}
