// Package agent wraps the external text-generation service behind a small
// provider interface and exposes the mutual-influence agent built on top of
// it.
package agent

import "context"

// Request describes one generation call to the external service.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	// ForceJSON asks the service for a single structured JSON-object reply.
	ForceJSON bool
}

// Provider issues generation requests to an external service. The returned
// text is raw and untrusted; schema validation happens in the metrics layer.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
