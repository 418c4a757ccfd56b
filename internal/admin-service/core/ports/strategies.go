package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// IDistanceEstimator stands in for a real routing/geocoding integration.
// The default adapter returns a bounded plausible estimate; a mapping-service
// adapter can be swapped in without touching the pricing core.
type IDistanceEstimator interface {
	EstimateKm(ctx context.Context, origin, destination string) (float64, error)
}

// IZoneResolver stands in for real zone-detection logic.
type IZoneResolver interface {
	Multiplier(ctx context.Context, origin, destination string) (decimal.Decimal, error)
}
