// Package llm holds the stand-in backend's chat assistant.
package llm

import (
	"context"

	"github.com/autoprestige/autoprestige/internal/api"
)

// Responder answers one chat message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Pricer prices a vehicle in USD.
type Pricer interface {
	Estimate(in api.ValuationInput) float64
}
