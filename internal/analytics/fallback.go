package analytics

import (
	"sort"
	"strings"
)

const (
	fallbackDailyWindow   = 90
	fallbackMonthlyWindow = 12
)

// unknownFaculty labels rows whose faculty reference is missing.
const unknownFaculty = "Non renseignée"

// BuildBundleFromRecords recomputes every aggregate shape directly from raw
// participation records. It is the fallback path used when the precomputed
// SQL views are unavailable: one pass over the records builds the day,
// month, hour, faculty and type maps plus the recurrent-user map
// simultaneously, then each map is flattened and sorted to match the shape
// contract of the primary path.
//
// Values may differ from the view-backed bundle (the raw fetch is bounded)
// but the shapes are identical, so downstream generators never branch on
// which path produced the bundle. Profitability needs capacity joins the
// raw rows cannot provide consistently, so it stays empty here, and hourly
// rows collapse onto weekday 0.
func BuildBundleFromRecords(records []ParticipationRecord) *AggregateBundle {
	byDay := make(map[string]*DailyRevenuePoint)
	byMonth := make(map[string]*MonthlyRevenuePoint)
	byHour := make(map[int]*HourlyParticipationPoint)
	byFaculty := make(map[string]*FacultyParticipationPoint)
	byType := make(map[string]*ActivityTypePerformance)

	type recurrentEntry struct {
		participations int
		activities     map[string]struct{}
		totalSpent     float64
	}
	recurrent := make(map[string]*recurrentEntry)

	for _, p := range records {
		amount := safeAmount(p.Amount)

		if name := strings.ToLower(strings.TrimSpace(p.FullName)); name != "" {
			entry, ok := recurrent[name]
			if !ok {
				entry = &recurrentEntry{activities: make(map[string]struct{})}
				recurrent[name] = entry
			}
			entry.participations++
			entry.activities[p.ActivityID.String()] = struct{}{}
			entry.totalSpent += amount
		}

		dayKey := p.CreatedAt.Format("2006-01-02")
		day, ok := byDay[dayKey]
		if !ok {
			day = &DailyRevenuePoint{Day: dayKey}
			byDay[dayKey] = day
		}
		day.Revenue += amount
		day.Participations++

		monthKey := p.CreatedAt.Format("2006-01")
		month, ok := byMonth[monthKey]
		if !ok {
			month = &MonthlyRevenuePoint{Month: monthKey}
			byMonth[monthKey] = month
		}
		month.Revenue += amount
		month.Payments++

		h := p.CreatedAt.Hour()
		hour, ok := byHour[h]
		if !ok {
			hour = &HourlyParticipationPoint{Hour: h}
			byHour[h] = hour
		}
		hour.Participations++
		hour.Revenue += amount

		facultyKey := p.Faculty
		if facultyKey == "" {
			facultyKey = unknownFaculty
		}
		faculty, ok := byFaculty[facultyKey]
		if !ok {
			faculty = &FacultyParticipationPoint{Faculty: facultyKey}
			byFaculty[facultyKey] = faculty
		}
		faculty.Participations++
		faculty.Revenue += amount
		if p.Kind == ParticipantStudent {
			faculty.Students++
		} else {
			faculty.Visitors++
		}

		typeKey := p.ActivityType
		if typeKey == "" {
			typeKey = "Autre"
		}
		perf, ok := byType[typeKey]
		if !ok {
			perf = &ActivityTypePerformance{Type: typeKey}
			byType[typeKey] = perf
		}
		perf.Revenue += amount
		perf.Participations++
	}

	bundle := &AggregateBundle{Participations: records}

	for _, d := range byDay {
		bundle.DailyRevenue = append(bundle.DailyRevenue, *d)
	}
	sort.Slice(bundle.DailyRevenue, func(i, j int) bool {
		return bundle.DailyRevenue[i].Day < bundle.DailyRevenue[j].Day
	})
	if len(bundle.DailyRevenue) > fallbackDailyWindow {
		bundle.DailyRevenue = bundle.DailyRevenue[len(bundle.DailyRevenue)-fallbackDailyWindow:]
	}

	for _, m := range byMonth {
		bundle.MonthlyRevenue = append(bundle.MonthlyRevenue, *m)
	}
	sort.Slice(bundle.MonthlyRevenue, func(i, j int) bool {
		return bundle.MonthlyRevenue[i].Month < bundle.MonthlyRevenue[j].Month
	})
	if len(bundle.MonthlyRevenue) > fallbackMonthlyWindow {
		bundle.MonthlyRevenue = bundle.MonthlyRevenue[len(bundle.MonthlyRevenue)-fallbackMonthlyWindow:]
	}

	for _, h := range byHour {
		bundle.HourlyParticipation = append(bundle.HourlyParticipation, *h)
	}
	sort.Slice(bundle.HourlyParticipation, func(i, j int) bool {
		return bundle.HourlyParticipation[i].Hour < bundle.HourlyParticipation[j].Hour
	})

	for _, f := range byFaculty {
		bundle.FacultyParticipation = append(bundle.FacultyParticipation, *f)
	}
	sort.Slice(bundle.FacultyParticipation, func(i, j int) bool {
		a, b := bundle.FacultyParticipation[i], bundle.FacultyParticipation[j]
		if a.Participations != b.Participations {
			return a.Participations > b.Participations
		}
		return a.Faculty < b.Faculty
	})

	for _, t := range byType {
		bundle.ActivityTypePerf = append(bundle.ActivityTypePerf, *t)
	}
	sort.Slice(bundle.ActivityTypePerf, func(i, j int) bool {
		a, b := bundle.ActivityTypePerf[i], bundle.ActivityTypePerf[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Type < b.Type
	})

	for name, entry := range recurrent {
		if entry.participations <= 1 {
			continue
		}
		bundle.RecurrentUsers = append(bundle.RecurrentUsers, RecurrentUserRow{
			Name:               name,
			Participations:     entry.participations,
			DistinctActivities: len(entry.activities),
			TotalSpent:         entry.totalSpent,
		})
	}
	sort.Slice(bundle.RecurrentUsers, func(i, j int) bool {
		a, b := bundle.RecurrentUsers[i], bundle.RecurrentUsers[j]
		if a.Participations != b.Participations {
			return a.Participations > b.Participations
		}
		return a.Name < b.Name
	})

	return bundle
}
