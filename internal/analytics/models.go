package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Participant kinds as stored on participation rows
const (
	ParticipantStudent = "etudiant"
	ParticipantVisitor = "visiteur"
)

// Insight categories
const (
	CategoryFinancial     = "financial"
	CategoryParticipation = "participation"
	CategoryActivity      = "activity"
	CategoryBehavioral    = "behavioral"
)

// Insight sentiments, used by the presentation layer for styling only
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentWarning  = "warning"
	SentimentInfo     = "info"
	SentimentNeutral  = "neutral"
)

// Recommendation categories
const (
	RecommendationTiming     = "timing"
	RecommendationScheduling = "scheduling"
	RecommendationMarketing  = "marketing"
)

// ParticipationRecord is one raw registration/payment row as seen by the
// engine. It is the source of truth for every derived aggregate.
type ParticipationRecord struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	Kind          string    `json:"kind"` // etudiant | visiteur
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	ActivityID    uuid.UUID `json:"activity_id"`
	ActivityName  string    `json:"activity_name"`
	ActivityType  string    `json:"activity_type"`
	Capacity      int       `json:"capacity"`
	Faculty       string    `json:"faculty"`
}

// DailyRevenuePoint is one calendar-day revenue bucket. Days are unique and
// ordered chronologically ascending.
type DailyRevenuePoint struct {
	Day            string  `json:"day"` // YYYY-MM-DD
	Revenue        float64 `json:"revenue"`
	Participations int     `json:"participations"`
}

// MonthlyRevenuePoint is one calendar-month revenue bucket, ascending.
type MonthlyRevenuePoint struct {
	Month    string  `json:"month"` // YYYY-MM
	Revenue  float64 `json:"revenue"`
	Payments int     `json:"payments"`
}

// HourlyParticipationPoint buckets registrations by hour of day (0-23) and
// day of week (0-6, Sunday = 0).
type HourlyParticipationPoint struct {
	Hour           int     `json:"hour"`
	Weekday        int     `json:"weekday"`
	Participations int     `json:"participations"`
	Revenue        float64 `json:"revenue"`
}

// FacultyParticipationPoint aggregates registrations per faculty, ordered by
// participation count descending.
type FacultyParticipationPoint struct {
	Faculty        string  `json:"faculty"`
	Participations int     `json:"participations"`
	Revenue        float64 `json:"revenue"`
	Students       int     `json:"students"`
	Visitors       int     `json:"visitors"`
}

// ActivityTypePerformance aggregates revenue per activity type, ordered by
// revenue descending.
type ActivityTypePerformance struct {
	Type           string  `json:"type"`
	Revenue        float64 `json:"revenue"`
	Participations int     `json:"participations"`
}

// ActivityProfitabilityRow ranks individual activities by revenue.
// FillRatePct is only meaningful when Capacity > 0.
type ActivityProfitabilityRow struct {
	ActivityID   uuid.UUID `json:"activity_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Participants int       `json:"participants"`
	Revenue      float64   `json:"revenue"`
	Capacity     int       `json:"capacity"`
	FillRatePct  float64   `json:"fill_rate_pct"`
}

// RecurrentUserRow describes a participant seen on more than one
// registration, keyed by normalized (lowercased, trimmed) name.
type RecurrentUserRow struct {
	Name               string  `json:"name"`
	Participations     int     `json:"participations"`
	DistinctActivities int     `json:"distinct_activities"`
	TotalSpent         float64 `json:"total_spent"`
}

// AggregateBundle is the full set of derived views for one analytics run.
// It may come from the precomputed SQL views or from the fallback
// recomputation; downstream code never distinguishes the two.
type AggregateBundle struct {
	DailyRevenue          []DailyRevenuePoint         `json:"daily_revenue"`
	MonthlyRevenue        []MonthlyRevenuePoint       `json:"monthly_revenue"`
	HourlyParticipation   []HourlyParticipationPoint  `json:"hourly_participation"`
	FacultyParticipation  []FacultyParticipationPoint `json:"faculty_participation"`
	ActivityTypePerf      []ActivityTypePerformance   `json:"activity_type_performance"`
	ActivityProfitability []ActivityProfitabilityRow  `json:"activity_profitability"`
	RecurrentUsers        []RecurrentUserRow          `json:"recurrent_users"`
	Participations        []ParticipationRecord       `json:"participations"`
}

// Insight is one generated, self-contained observation.
type Insight struct {
	Category  string `json:"category"`
	Text      string `json:"text"`
	Value     string `json:"value,omitempty"`
	Sentiment string `json:"sentiment"`
}

// DuplicateCandidate pairs two near-identical registrations (same normalized
// name and activity) created within the duplicate window.
type DuplicateCandidate struct {
	Current    ParticipationRecord `json:"current"`
	Previous   ParticipationRecord `json:"previous"`
	HoursApart float64             `json:"hours_apart"`
}

// PaymentOutlier flags a payment whose amount sits far above the sample mean.
type PaymentOutlier struct {
	Record ParticipationRecord `json:"record"`
	ZScore float64             `json:"z_score"`
}

// ForecastPoint is one projected future period. Forecast is never negative.
type ForecastPoint struct {
	Period   int     `json:"period"`
	Forecast float64 `json:"forecast"`
}

// Recommendation is one actionable suggestion.
type Recommendation struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// AnomalyReport groups both anomaly kinds, each capped by the engine.
type AnomalyReport struct {
	Duplicates      []DuplicateCandidate `json:"duplicates"`
	PaymentOutliers []PaymentOutlier     `json:"payment_outliers"`
}

// InsightReport is the composed output of one engine run.
type InsightReport struct {
	Financial       []Insight        `json:"financial"`
	Participation   []Insight        `json:"participation"`
	Activity        []Insight        `json:"activity"`
	Behavioral      []Insight        `json:"behavioral"`
	Recommendations []Recommendation `json:"recommendations"`
	Anomalies       AnomalyReport    `json:"anomalies"`
}

// weekday label tables, indexed 0-6 (Sunday first)
var (
	weekdayShort = [7]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}
	weekdayLong  = [7]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}
)
