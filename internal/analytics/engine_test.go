package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func buildTestBundle() *AggregateBundle {
	activity := uuid.New()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	var participations []ParticipationRecord
	for i := 0; i < 20; i++ {
		participations = append(participations, record(
			fmt.Sprintf("participant %d", i), activity, 1000, base.Add(time.Duration(i)*24*time.Hour)))
	}

	return &AggregateBundle{
		DailyRevenue: []DailyRevenuePoint{
			{Day: "2026-08-01", Revenue: 100},
			{Day: "2026-08-02", Revenue: 150},
			{Day: "2026-08-03", Revenue: 120},
			{Day: "2026-08-04", Revenue: 90},
			{Day: "2026-08-05", Revenue: 110},
			{Day: "2026-08-06", Revenue: 140},
			{Day: "2026-08-07", Revenue: 900},
		},
		MonthlyRevenue: []MonthlyRevenuePoint{
			{Month: "2026-07", Revenue: 5000},
			{Month: "2026-08", Revenue: 8000},
		},
		HourlyParticipation: []HourlyParticipationPoint{
			{Hour: 10, Weekday: 1, Participations: 12, Revenue: 4000},
			{Hour: 15, Weekday: 4, Participations: 5, Revenue: 1500},
		},
		FacultyParticipation: []FacultyParticipationPoint{
			{Faculty: "Faculté de Médecine", Participations: 25, Students: 20, Visitors: 5},
			{Faculty: "Faculté de Droit", Participations: 8, Students: 6, Visitors: 2},
		},
		ActivityTypePerf: []ActivityTypePerformance{
			{Type: "Formation", Revenue: 9000, Participations: 30},
			{Type: "Atelier", Revenue: 400, Participations: 3},
		},
		ActivityProfitability: []ActivityProfitabilityRow{
			{ActivityID: activity, Name: "Formation Excel", Revenue: 9000, Participants: 30, Capacity: 40, FillRatePct: 75},
		},
		RecurrentUsers: []RecurrentUserRow{
			{Name: "jean dupont", Participations: 4, DistinctActivities: 3, TotalSpent: 4000},
		},
		Participations: participations,
	}
}

func TestEngineRunIsDeterministic(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	bundle := buildTestBundle()

	first := engine.Run(bundle)
	second := engine.Run(bundle)
	require.Equal(t, first, second)
}

func TestEngineRunEmptyBundle(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	report := engine.Run(&AggregateBundle{})

	require.NotNil(t, report)
	require.Empty(t, report.Financial)
	require.Empty(t, report.Participation)
	require.Empty(t, report.Activity)
	require.Empty(t, report.Behavioral)
	require.Empty(t, report.Recommendations)
	require.Empty(t, report.Anomalies.Duplicates)
	require.Empty(t, report.Anomalies.PaymentOutliers)
}

func TestEngineRunCapsAnomalyLists(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	// fifteen duplicate pairs, spaced out so the rapid-registration scan
	// stays quiet
	var participations []ParticipationRecord
	for i := 0; i < 15; i++ {
		name := fmt.Sprintf("participant %d", i)
		at := base.Add(time.Duration(i) * 24 * time.Hour)
		participations = append(participations,
			record(name, activity, 0, at),
			record(name, activity, 0, at.Add(time.Hour)),
		)
	}

	report := engine.Run(&AggregateBundle{Participations: participations})
	require.Len(t, report.Anomalies.Duplicates, 10)
}

func TestEngineRunRecommendationsCapped(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	report := engine.Run(buildTestBundle())
	require.LessOrEqual(t, len(report.Recommendations), 5)
	require.NotEmpty(t, report.Recommendations)
}
