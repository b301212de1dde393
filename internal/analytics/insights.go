package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FinancialInsights reads the revenue views: month-over-month movement, a
// z-score scan of the last seven days, average revenue per participant, and
// the top profitable activity. Empty inputs yield no insights.
func (e *Engine) FinancialInsights(b *AggregateBundle) []Insight {
	var insights []Insight

	if len(b.MonthlyRevenue) >= 2 {
		last := safeAmount(b.MonthlyRevenue[len(b.MonthlyRevenue)-1].Revenue)
		prev := safeAmount(b.MonthlyRevenue[len(b.MonthlyRevenue)-2].Revenue)
		var pct float64
		if prev > 0 {
			pct = (last - prev) / prev * 100
		}
		if pct >= e.cfg.MoMThresholdPct || -pct >= e.cfg.MoMThresholdPct {
			text := fmt.Sprintf("Revenus du dernier mois en hausse de %.1f%% par rapport au mois précédent", pct)
			sentiment := SentimentPositive
			if pct < 0 {
				text = fmt.Sprintf("Revenus du dernier mois en baisse de %.1f%% par rapport au mois précédent", -pct)
				sentiment = SentimentNegative
			}
			insights = append(insights, Insight{
				Category:  CategoryFinancial,
				Text:      text,
				Value:     formatFC(last),
				Sentiment: sentiment,
			})
		}
	}

	if len(b.DailyRevenue) >= 7 {
		last7 := b.DailyRevenue[len(b.DailyRevenue)-7:]
		values := make([]float64, len(last7))
		for i, d := range last7 {
			values[i] = safeAmount(d.Revenue)
		}
		points := DetectSeriesAnomalies(values, e.cfg.SeriesThreshold)

		spike, drop := -1, -1
		for i, p := range points {
			if p.ZScore > e.cfg.SeriesThreshold && (spike < 0 || p.ZScore > points[spike].ZScore) {
				spike = i
			}
			if p.ZScore < -e.cfg.SeriesThreshold && (drop < 0 || p.ZScore < points[drop].ZScore) {
				drop = i
			}
		}
		if spike >= 0 {
			insights = append(insights, Insight{
				Category:  CategoryFinancial,
				Text:      fmt.Sprintf("Pic de revenus détecté récemment (%.1fσ au-dessus de la normale)", points[spike].ZScore),
				Sentiment: SentimentInfo,
			})
		}
		if drop >= 0 && values[drop] > 0 {
			insights = append(insights, Insight{
				Category:  CategoryFinancial,
				Text:      "Chute inhabituelle des revenus détectée",
				Sentiment: SentimentWarning,
			})
		}
	}

	var totalRevenue float64
	for _, p := range b.Participations {
		totalRevenue += safeAmount(p.Amount)
	}
	if n := len(b.Participations); n > 0 && totalRevenue > 0 {
		avg := totalRevenue / float64(n)
		insights = append(insights, Insight{
			Category:  CategoryFinancial,
			Text:      fmt.Sprintf("Revenu moyen par participant : %s", formatFC(avg)),
			Value:     formatFC(avg),
			Sentiment: SentimentNeutral,
		})
	}

	if len(b.ActivityProfitability) > 0 {
		top := b.ActivityProfitability[0]
		insights = append(insights, Insight{
			Category:  CategoryFinancial,
			Text:      fmt.Sprintf("Activité la plus rentable : « %s » (%s)", top.Name, formatFC(top.Revenue)),
			Sentiment: SentimentPositive,
		})
	}

	return insights
}

// ParticipationInsights reads the hourly and faculty views: peak hour, peak
// weekday, faculty dominance, and the student/visitor split.
func (e *Engine) ParticipationInsights(b *AggregateBundle) []Insight {
	var insights []Insight

	if len(b.HourlyParticipation) > 0 {
		byHour := make(map[int]float64)
		byDay := make(map[int]float64)
		for _, r := range b.HourlyParticipation {
			byHour[r.Hour] += float64(r.Participations)
			byDay[r.Weekday] += float64(r.Participations)
		}

		if hour, count, ok := argmax(byHour); ok {
			insights = append(insights, Insight{
				Category:  CategoryParticipation,
				Text:      fmt.Sprintf("Heure de pointe : %02dh (%d inscriptions)", hour, int(count)),
				Value:     fmt.Sprintf("%dh", hour),
				Sentiment: SentimentPositive,
			})
		}
		if day, count, ok := argmax(byDay); ok {
			label := "Jour"
			if day >= 0 && day < len(weekdayShort) {
				label = weekdayShort[day]
			}
			insights = append(insights, Insight{
				Category:  CategoryParticipation,
				Text:      fmt.Sprintf("%s est le jour le plus actif (%d inscriptions)", label, int(count)),
				Sentiment: SentimentPositive,
			})
		}
	}

	if len(b.FacultyParticipation) >= 2 {
		first := b.FacultyParticipation[0]
		second := b.FacultyParticipation[1]
		r1 := float64(first.Participations)
		r2 := float64(second.Participations)
		if r1 > 0 && r2 > 0 && r1/r2 >= e.cfg.DominanceRatio {
			insights = append(insights, Insight{
				Category:  CategoryParticipation,
				Text:      fmt.Sprintf("Les étudiants de %s participent environ %.1f× plus que %s", first.Faculty, r1/r2, second.Faculty),
				Sentiment: SentimentInfo,
			})
		}
	}

	var students, visitors int
	for _, f := range b.FacultyParticipation {
		students += f.Students
		visitors += f.Visitors
	}
	if total := students + visitors; total > 0 {
		ratio := float64(students) / float64(total) * 100
		insights = append(insights, Insight{
			Category:  CategoryParticipation,
			Text:      fmt.Sprintf("Ratio Étudiants / Visiteurs : %.0f%% étudiants, %.0f%% visiteurs", ratio, 100-ratio),
			Sentiment: SentimentNeutral,
		})
	}

	return insights
}

// ActivityInsights reads the type-performance and profitability views:
// underperforming types, the most popular type, and the count of
// under-filled activities.
func (e *Engine) ActivityInsights(b *AggregateBundle) []Insight {
	var insights []Insight

	if len(b.ActivityTypePerf) > 0 {
		var total float64
		for _, t := range b.ActivityTypePerf {
			total += safeAmount(t.Revenue)
		}
		avg := total / float64(len(b.ActivityTypePerf))

		flagged := 0
		for _, t := range b.ActivityTypePerf {
			if flagged >= e.cfg.MaxUnderperformers {
				break
			}
			rev := safeAmount(t.Revenue)
			if rev < avg*e.cfg.UnderperformRatio {
				insights = append(insights, Insight{
					Category:  CategoryActivity,
					Text:      fmt.Sprintf("Les activités « %s » sous-performent (%s)", t.Type, formatFC(rev)),
					Sentiment: SentimentWarning,
				})
				flagged++
			}
		}

		top := b.ActivityTypePerf[0]
		insights = append(insights, Insight{
			Category:  CategoryActivity,
			Text:      fmt.Sprintf("Type le plus populaire : « %s » (%d participants)", top.Type, top.Participations),
			Sentiment: SentimentPositive,
		})
	}

	if len(b.ActivityProfitability) > 0 {
		lowFill := 0
		for _, a := range b.ActivityProfitability {
			if a.Capacity > 0 && a.FillRatePct < e.cfg.LowFillRatePct {
				lowFill++
			}
		}
		if lowFill > 0 {
			insights = append(insights, Insight{
				Category:  CategoryActivity,
				Text:      fmt.Sprintf("%d activité(s) avec taux de remplissage sous %.0f%%", lowFill, e.cfg.LowFillRatePct),
				Sentiment: SentimentWarning,
			})
		}
	}

	return insights
}

// BehavioralInsights reads the recurrent-user view and the raw record tail:
// a recurrent-user headline plus a rapid-registration signal when recent
// registrations arrive implausibly close together.
func (e *Engine) BehavioralInsights(b *AggregateBundle) []Insight {
	var insights []Insight

	if len(b.RecurrentUsers) > 0 {
		top := b.RecurrentUsers[0]
		insights = append(insights, Insight{
			Category:  CategoryBehavioral,
			Text:      fmt.Sprintf("%d utilisateurs récurrents identifiés. Meilleur : %d participations", len(b.RecurrentUsers), top.Participations),
			Sentiment: SentimentPositive,
		})
	}

	if len(b.Participations) >= e.cfg.RapidMinRecords {
		// Participations arrive newest-first; take the most recent window
		// and re-order it chronologically before measuring gaps.
		recent := b.Participations
		if len(recent) > e.cfg.RapidWindow {
			recent = recent[:e.cfg.RapidWindow]
		}
		times := make([]time.Time, len(recent))
		for i, p := range recent {
			times[i] = p.CreatedAt
		}
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		var gaps []float64
		for i := 1; i < len(times); i++ {
			gaps = append(gaps, times[i].Sub(times[i-1]).Minutes())
		}
		avgGap := Mean(gaps)
		if avgGap > 0 && avgGap < e.cfg.RapidMaxAvgGap.Minutes() {
			insights = append(insights, Insight{
				Category:  CategoryBehavioral,
				Text:      "Inscriptions rapprochées détectées (vitesse d'inscription élevée)",
				Sentiment: SentimentInfo,
			})
		}
	}

	return insights
}

// Recommendations produces the capped suggestion list in fixed precedence:
// best-revenue hour, best-revenue weekday, then a marketing nudge for every
// activity type under the low-revenue threshold.
func (e *Engine) Recommendations(b *AggregateBundle) []Recommendation {
	var recs []Recommendation

	if len(b.HourlyParticipation) > 0 {
		byHour := make(map[int]float64)
		byDay := make(map[int]float64)
		for _, r := range b.HourlyParticipation {
			byHour[r.Hour] += safeAmount(r.Revenue)
			byDay[r.Weekday] += safeAmount(r.Revenue)
		}

		if hour, _, ok := argmax(byHour); ok {
			recs = append(recs, Recommendation{
				Text:     fmt.Sprintf("Privilégier les créneaux autour de %dh pour maximiser les revenus", hour),
				Category: RecommendationTiming,
			})
		}
		if day, revenue, ok := argmax(byDay); ok && revenue > 0 && day >= 0 && day < len(weekdayLong) {
			recs = append(recs, Recommendation{
				Text:     fmt.Sprintf("Recommander de programmer les formations le %s (meilleur jour)", weekdayLong[day]),
				Category: RecommendationScheduling,
			})
		}
	}

	if len(b.ActivityTypePerf) > 0 {
		var low []string
		for _, t := range b.ActivityTypePerf {
			if safeAmount(t.Revenue) < e.cfg.LowRevenueThreshold {
				low = append(low, t.Type)
			}
		}
		if len(low) > 0 {
			recs = append(recs, Recommendation{
				Text:     fmt.Sprintf("Envisager une promotion ou une refonte des activités « %s »", strings.Join(low, ", ")),
				Category: RecommendationMarketing,
			})
		}
	}

	if len(recs) > e.cfg.MaxRecommendations {
		recs = recs[:e.cfg.MaxRecommendations]
	}
	return recs
}

// argmax returns the key with the highest value. Ties break on the lowest
// key so repeated runs over the same bundle stay deterministic.
func argmax(m map[int]float64) (key int, value float64, ok bool) {
	for k, v := range m {
		if !ok || v > value || (v == value && k < key) {
			key, value, ok = k, v, true
		}
	}
	return key, value, ok
}
