package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFinancialInsightsMonthOverMonth(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		MonthlyRevenue: []MonthlyRevenuePoint{
			{Month: "2026-06", Revenue: 1000, Payments: 10},
			{Month: "2026-07", Revenue: 1200, Payments: 12},
		},
	}

	insights := engine.FinancialInsights(bundle)
	require.Len(t, insights, 1)
	require.Equal(t, CategoryFinancial, insights[0].Category)
	require.Equal(t, SentimentPositive, insights[0].Sentiment)
	require.Contains(t, insights[0].Text, "hausse de 20.0%")
	require.Equal(t, "1 200 FC", insights[0].Value)
}

func TestFinancialInsightsMonthOverMonthDecline(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		MonthlyRevenue: []MonthlyRevenuePoint{
			{Month: "2026-06", Revenue: 2000},
			{Month: "2026-07", Revenue: 1000},
		},
	}

	insights := engine.FinancialInsights(bundle)
	require.Len(t, insights, 1)
	require.Equal(t, SentimentNegative, insights[0].Sentiment)
	require.Contains(t, insights[0].Text, "baisse de 50.0%")
}

func TestFinancialInsightsMonthOverMonthBelowThreshold(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		MonthlyRevenue: []MonthlyRevenuePoint{
			{Month: "2026-06", Revenue: 1000},
			{Month: "2026-07", Revenue: 1040}, // +4%, under the 5% threshold
		},
	}
	require.Empty(t, engine.FinancialInsights(bundle))
}

func TestFinancialInsightsDailySpike(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		DailyRevenue: []DailyRevenuePoint{
			{Day: "2026-08-01", Revenue: 100},
			{Day: "2026-08-02", Revenue: 100},
			{Day: "2026-08-03", Revenue: 100},
			{Day: "2026-08-04", Revenue: 100},
			{Day: "2026-08-05", Revenue: 100},
			{Day: "2026-08-06", Revenue: 100},
			{Day: "2026-08-07", Revenue: 1000},
		},
	}

	insights := engine.FinancialInsights(bundle)
	require.Len(t, insights, 1)
	require.Contains(t, insights[0].Text, "Pic de revenus")
	require.Equal(t, SentimentInfo, insights[0].Sentiment)
}

func TestFinancialInsightsDropNeedsPositiveValue(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	// a zero-revenue day scores as a statistical drop but must not produce
	// the drop insight
	bundle := &AggregateBundle{
		DailyRevenue: []DailyRevenuePoint{
			{Day: "2026-08-01", Revenue: 1000},
			{Day: "2026-08-02", Revenue: 1000},
			{Day: "2026-08-03", Revenue: 1000},
			{Day: "2026-08-04", Revenue: 1000},
			{Day: "2026-08-05", Revenue: 1000},
			{Day: "2026-08-06", Revenue: 1000},
			{Day: "2026-08-07", Revenue: 0},
		},
	}
	require.Empty(t, engine.FinancialInsights(bundle))
}

func TestFinancialInsightsAverageAndTopActivity(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()

	bundle := &AggregateBundle{
		Participations: []ParticipationRecord{
			record("a", activity, 1000, time.Now()),
			record("b", activity, 2000, time.Now()),
		},
		ActivityProfitability: []ActivityProfitabilityRow{
			{Name: "Formation Excel", Revenue: 3000, Participants: 2},
		},
	}

	insights := engine.FinancialInsights(bundle)
	require.Len(t, insights, 2)
	require.Contains(t, insights[0].Text, "Revenu moyen par participant")
	require.Equal(t, "1 500 FC", insights[0].Value)
	require.Contains(t, insights[1].Text, "Formation Excel")
	require.Contains(t, insights[1].Text, "3 000 FC")
}

func TestParticipationInsightsPeaks(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		HourlyParticipation: []HourlyParticipationPoint{
			{Hour: 10, Weekday: 2, Participations: 30},
			{Hour: 14, Weekday: 5, Participations: 10},
		},
	}

	insights := engine.ParticipationInsights(bundle)
	require.Len(t, insights, 2)
	require.Contains(t, insights[0].Text, "Heure de pointe : 10h")
	require.Contains(t, insights[0].Text, "30 inscriptions")
	require.Contains(t, insights[1].Text, "Mar est le jour le plus actif")
}

func TestParticipationInsightsFacultyDominance(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		FacultyParticipation: []FacultyParticipationPoint{
			{Faculty: "Faculté de Médecine", Participations: 30, Students: 26, Visitors: 4},
			{Faculty: "Faculté de Droit", Participations: 10, Students: 8, Visitors: 2},
		},
	}

	insights := engine.ParticipationInsights(bundle)
	require.Len(t, insights, 2)
	require.Contains(t, insights[0].Text, "Faculté de Médecine")
	require.Contains(t, insights[0].Text, "3.0×")
	require.Contains(t, insights[1].Text, "Ratio Étudiants / Visiteurs")
}

func TestParticipationInsightsNoDominanceBelowRatio(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		FacultyParticipation: []FacultyParticipationPoint{
			{Faculty: "A", Participations: 12, Students: 12},
			{Faculty: "B", Participations: 10, Students: 10},
		},
	}

	insights := engine.ParticipationInsights(bundle)
	require.Len(t, insights, 1) // only the student/visitor split
	require.Contains(t, insights[0].Text, "Ratio")
}

func TestActivityInsightsUnderperformersCapped(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	// three types qualify as underperformers, only two may be flagged
	bundle := &AggregateBundle{
		ActivityTypePerf: []ActivityTypePerformance{
			{Type: "Formation", Revenue: 10000, Participations: 50},
			{Type: "Atelier", Revenue: 10},
			{Type: "Conférence", Revenue: 10},
			{Type: "Séminaire", Revenue: 10},
		},
	}

	insights := engine.ActivityInsights(bundle)

	warnings := 0
	for _, in := range insights {
		if in.Sentiment == SentimentWarning {
			warnings++
			require.Contains(t, in.Text, "sous-performent")
		}
	}
	require.Equal(t, 2, warnings)
	require.Contains(t, insights[len(insights)-1].Text, "Type le plus populaire : « Formation »")
}

func TestActivityInsightsLowFillCount(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		ActivityProfitability: []ActivityProfitabilityRow{
			{Name: "a", Capacity: 100, FillRatePct: 30},
			{Name: "b", Capacity: 0, FillRatePct: 0}, // no capacity, ignored
			{Name: "c", Capacity: 50, FillRatePct: 80},
		},
	}

	insights := engine.ActivityInsights(bundle)
	require.Len(t, insights, 1)
	require.Contains(t, insights[0].Text, "1 activité(s) avec taux de remplissage sous 50%")
}

func TestBehavioralInsightsRecurrentHeadline(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		RecurrentUsers: []RecurrentUserRow{
			{Name: "jean dupont", Participations: 5},
			{Name: "marie ilunga", Participations: 3},
		},
	}

	insights := engine.BehavioralInsights(bundle)
	require.Len(t, insights, 1)
	require.Contains(t, insights[0].Text, "2 utilisateurs récurrents")
	require.Contains(t, insights[0].Text, "Meilleur : 5 participations")
}

func TestBehavioralInsightsRapidRegistrations(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	// newest-first, one minute apart
	var rapid []ParticipationRecord
	for i := 0; i < 12; i++ {
		rapid = append(rapid, record("p", activity, 0, base.Add(-time.Duration(i)*time.Minute)))
	}
	insights := engine.BehavioralInsights(&AggregateBundle{Participations: rapid})
	require.Len(t, insights, 1)
	require.Contains(t, insights[0].Text, "Inscriptions rapprochées")

	// one hour apart: an ordinary pace
	var slow []ParticipationRecord
	for i := 0; i < 12; i++ {
		slow = append(slow, record("p", activity, 0, base.Add(-time.Duration(i)*time.Hour)))
	}
	require.Empty(t, engine.BehavioralInsights(&AggregateBundle{Participations: slow}))
}

func TestRecommendations(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	bundle := &AggregateBundle{
		HourlyParticipation: []HourlyParticipationPoint{
			{Hour: 10, Weekday: 2, Participations: 30, Revenue: 5000},
			{Hour: 14, Weekday: 5, Participations: 10, Revenue: 1000},
		},
		ActivityTypePerf: []ActivityTypePerformance{
			{Type: "Formation", Revenue: 10000},
			{Type: "Atelier", Revenue: 500},
			{Type: "Jeux", Revenue: 200},
		},
	}

	recs := engine.Recommendations(bundle)
	require.Len(t, recs, 3)
	require.Equal(t, RecommendationTiming, recs[0].Category)
	require.Contains(t, recs[0].Text, "autour de 10h")
	require.Equal(t, RecommendationScheduling, recs[1].Category)
	require.Contains(t, recs[1].Text, "le Mardi")
	require.Equal(t, RecommendationMarketing, recs[2].Category)
	require.Contains(t, recs[2].Text, "Atelier, Jeux")
}

func TestArgmaxTieBreaksOnLowestKey(t *testing.T) {
	key, value, ok := argmax(map[int]float64{3: 10, 1: 10, 2: 10})
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.Equal(t, 10.0, value)

	_, _, ok = argmax(map[int]float64{})
	require.False(t, ok)
}
