package geo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateKm_StableAndBounded(t *testing.T) {
	e := NewEstimator()

	first, err := e.EstimateKm(context.Background(), "Airport", "City Center")
	require.NoError(t, err)
	second, err := e.EstimateKm(context.Background(), "Airport", "City Center")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 10.0)
	assert.LessOrEqual(t, first, 60.0)
}

func TestEstimateKm_DirectionMatters(t *testing.T) {
	e := NewEstimator()

	out, err := e.EstimateKm(context.Background(), "Airport", "Harbor")
	require.NoError(t, err)
	back, err := e.EstimateKm(context.Background(), "Harbor", "Airport")
	require.NoError(t, err)

	assert.NotEqual(t, out, back)
}

func TestStaticZoneResolver(t *testing.T) {
	z := NewStaticZoneResolver(decimal.RequireFromString("1.2"))

	m, err := z.Multiplier(context.Background(), "Airport", "City Center")
	require.NoError(t, err)
	assert.True(t, m.Equal(decimal.RequireFromString("1.2")))
}
