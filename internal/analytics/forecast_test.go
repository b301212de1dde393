package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleForecastEmptyHistory(t *testing.T) {
	require.Nil(t, SimpleForecast(nil, 3))
	require.Nil(t, SimpleForecast([]float64{}, 3))
}

func TestSimpleForecastInvalidPeriods(t *testing.T) {
	require.Nil(t, SimpleForecast([]float64{100}, 0))
	require.Nil(t, SimpleForecast([]float64{100}, -1))
}

func TestSimpleForecastLength(t *testing.T) {
	points := SimpleForecast([]float64{100, 120, 110}, 5)
	require.Len(t, points, 5)
	for i, p := range points {
		require.Equal(t, i+1, p.Period)
	}
}

func TestSimpleForecastFlatHistory(t *testing.T) {
	points := SimpleForecast([]float64{200, 200, 200, 200}, 3)
	require.Len(t, points, 3)
	for _, p := range points {
		require.Equal(t, 200.0, p.Forecast)
	}
}

func TestSimpleForecastNeverNegative(t *testing.T) {
	// steep downward trend would extrapolate below zero without the floor
	points := SimpleForecast([]float64{100, 0}, 4)
	require.Len(t, points, 4)
	for _, p := range points {
		require.GreaterOrEqual(t, p.Forecast, 0.0)
	}
	require.Equal(t, 0.0, points[3].Forecast)
}

func TestSimpleForecastUsesTrailingWindow(t *testing.T) {
	// old history outside the trailing window must not leak into the average
	history := []float64{1000, 1000, 1000, 10, 10, 10, 10, 10, 10}
	points := SimpleForecast(history, 2)
	require.Len(t, points, 2)
	for _, p := range points {
		require.Equal(t, 10.0, p.Forecast)
	}
}
