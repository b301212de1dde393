package analytics

import "time"

// EngineConfig carries the tunable thresholds of the insight engine.
// The underperformer ratio and the low-revenue marketing threshold started
// life as hardcoded presentation constants; they are configuration here
// because nobody ever documented a business rationale for the exact values.
type EngineConfig struct {
	// SeriesThreshold is the |z| above which a daily revenue point counts
	// as a spike or drop.
	SeriesThreshold float64
	// OutlierMultiplier is the one-sided z threshold for payment outliers.
	OutlierMultiplier float64
	// MinOutlierSample is the minimum number of positive payments required
	// before outlier detection runs at all.
	MinOutlierSample int
	// DuplicateWindow is the maximum creation-time gap between two
	// registrations for them to count as duplicate candidates.
	DuplicateWindow time.Duration
	// MoMThresholdPct is the minimum absolute month-over-month revenue
	// change (in percent) worth an insight.
	MoMThresholdPct float64
	// DominanceRatio is the top-vs-second faculty participation ratio that
	// triggers the dominance insight.
	DominanceRatio float64
	// UnderperformRatio marks an activity type as underperforming when its
	// revenue is below this fraction of the across-type average.
	UnderperformRatio float64
	// LowFillRatePct is the fill rate (percent) under which an activity
	// counts as under-filled.
	LowFillRatePct float64
	// LowRevenueThreshold is the per-type revenue (FC) under which the
	// marketing recommendation names a type.
	LowRevenueThreshold float64
	// RapidWindow bounds how many of the most recent registrations feed
	// the rapid-registration scan.
	RapidWindow int
	// RapidMinRecords is the minimum history size before the scan runs.
	RapidMinRecords int
	// RapidMaxAvgGap is the average inter-registration gap under which
	// registrations count as suspiciously rapid.
	RapidMaxAvgGap time.Duration
	// MaxRecommendations caps the recommendation list.
	MaxRecommendations int
	// MaxAnomalies caps each anomaly list in the composed report.
	MaxAnomalies int
	// MaxUnderperformers caps how many underperforming types get an insight.
	MaxUnderperformers int
}

// DefaultEngineConfig returns the thresholds the reporting screen shipped
// with.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SeriesThreshold:     2,
		OutlierMultiplier:   3,
		MinOutlierSample:    5,
		DuplicateWindow:     24 * time.Hour,
		MoMThresholdPct:     5,
		DominanceRatio:      1.5,
		UnderperformRatio:   0.5,
		LowFillRatePct:      50,
		LowRevenueThreshold: 1000,
		RapidWindow:         50,
		RapidMinRecords:     10,
		RapidMaxAvgGap:      5 * time.Minute,
		MaxRecommendations:  5,
		MaxAnomalies:        10,
		MaxUnderperformers:  2,
	}
}

// Engine runs the generators and detectors over one aggregate bundle. It
// holds no mutable state: the same bundle always yields the same report, and
// one Engine value can serve concurrent report requests.
type Engine struct {
	cfg EngineConfig
}

// NewEngine builds an engine with the given thresholds.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Run composes the full insight report for one bundle: the four independent
// generators, both anomaly detectors (each capped), and the recommendation
// set. Pure computation, no I/O.
func (e *Engine) Run(bundle *AggregateBundle) *InsightReport {
	duplicates := e.DetectDuplicateCandidates(bundle.Participations)
	outliers := e.DetectPaymentOutliers(bundle.Participations)

	return &InsightReport{
		Financial:       e.FinancialInsights(bundle),
		Participation:   e.ParticipationInsights(bundle),
		Activity:        e.ActivityInsights(bundle),
		Behavioral:      e.BehavioralInsights(bundle),
		Recommendations: e.Recommendations(bundle),
		Anomalies: AnomalyReport{
			Duplicates:      capDuplicates(duplicates, e.cfg.MaxAnomalies),
			PaymentOutliers: capOutliers(outliers, e.cfg.MaxAnomalies),
		},
	}
}

func capDuplicates(in []DuplicateCandidate, n int) []DuplicateCandidate {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capOutliers(in []PaymentOutlier, n int) []PaymentOutlier {
	if len(in) > n {
		return in[:n]
	}
	return in
}
