package port

import "context"

// ReportDelivery transmits a rendered report to the operator (Port).
// Delivery is best effort: a failure is logged and reported, but the run's
// outcome is tied to the report artifact, not to its transmission.
type ReportDelivery interface {
	// Deliver sends the document with the given subject line
	Deliver(ctx context.Context, subject string, document []byte) error
}
