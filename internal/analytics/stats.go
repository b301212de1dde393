package analytics

import "math"

// Mean returns the arithmetic mean of values, or 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation (N divisor), or 0 for
// empty input.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// ZScore returns the standardized distance of value from mean. A zero
// stdDev is coerced to 1 so that a series of identical values yields a
// z-score of 0 everywhere instead of a division by zero.
func ZScore(value, mean, stdDev float64) float64 {
	if stdDev == 0 {
		stdDev = 1
	}
	return (value - mean) / stdDev
}

// SeriesPoint is the per-index result of a z-score scan over a series.
type SeriesPoint struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
	IsAnomaly bool    `json:"is_anomaly"`
}

// DetectSeriesAnomalies scores every value of the series against its own
// mean and standard deviation, flagging |z| > threshold.
func DetectSeriesAnomalies(values []float64, threshold float64) []SeriesPoint {
	m := Mean(values)
	s := StdDev(values)
	points := make([]SeriesPoint, len(values))
	for i, v := range values {
		z := ZScore(v, m, s)
		points[i] = SeriesPoint{
			Index:     i,
			Value:     v,
			ZScore:    z,
			IsAnomaly: math.Abs(z) > threshold,
		}
	}
	return points
}
