// Package feedback isolates the external text-generation service used
// for speech coaching behind a narrow interface. Callers treat the
// returned feedback as an opaque string.
package feedback

import "context"

// Provider generates free-text feedback for a speech transcript.
type Provider interface {
	Feedback(ctx context.Context, transcript string) (string, error)
}
