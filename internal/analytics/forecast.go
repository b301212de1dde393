package analytics

// forecastWindow caps how many trailing points feed the projection.
const forecastWindow = 6

// SimpleForecast projects revenue for the requested number of future
// periods from the most recent history points. It averages the trailing
// window, adds the signed last-minus-first trend spread over the window,
// and floors every projection at zero.
//
// This is a deliberate naive linear extrapolation, not a statistical
// model: the reporting screen needs a plausible short-horizon line, not a
// fitted one.
func SimpleForecast(history []float64, periods int) []ForecastPoint {
	if len(history) == 0 || periods <= 0 {
		return nil
	}

	window := history
	if len(window) > forecastWindow {
		window = window[len(window)-forecastWindow:]
	}

	avg := Mean(window)
	var trend float64
	if len(window) >= 2 {
		trend = window[len(window)-1] - window[0]
	}

	points := make([]ForecastPoint, 0, periods)
	step := trend / float64(len(window))
	for i := 1; i <= periods; i++ {
		value := avg + step*float64(i)
		if value < 0 {
			value = 0
		}
		points = append(points, ForecastPoint{Period: i, Forecast: value})
	}
	return points
}
