package geo

import (
	"context"
	"hash/fnv"
	"math"

	"transfer-admin/internal/admin-service/core/ports"

	"github.com/shopspring/decimal"
)

const (
	minKm = 10.0
	maxKm = 60.0
)

// Estimator derives a distance from the route names alone. There is no map
// provider behind the portal, so distances are synthesized, but the same
// origin and destination pair must always quote the same distance.
type Estimator struct{}

func NewEstimator() ports.IDistanceEstimator {
	return &Estimator{}
}

func (e *Estimator) EstimateKm(_ context.Context, origin, destination string) (float64, error) {
	h := fnv.New64a()
	h.Write([]byte(origin))
	h.Write([]byte{'|'})
	h.Write([]byte(destination))

	frac := float64(h.Sum64()%10000) / 10000.0
	km := minKm + frac*(maxKm-minKm)
	return math.Round(km*10) / 10, nil
}

// StaticZoneResolver applies one multiplier to every route. Zone polygons are
// managed elsewhere; until a geo lookup exists all routes price as one zone.
type StaticZoneResolver struct {
	multiplier decimal.Decimal
}

func NewStaticZoneResolver(multiplier decimal.Decimal) ports.IZoneResolver {
	return &StaticZoneResolver{multiplier: multiplier}
}

func (z *StaticZoneResolver) Multiplier(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return z.multiplier, nil
}
