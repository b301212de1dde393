package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubRepository serves canned view results and lets individual queries fail.
type stubRepository struct {
	daily   []DailyRevenuePoint
	monthly []MonthlyRevenuePoint
	hourly  []HourlyParticipationPoint
	faculty []FacultyParticipationPoint
	types   []ActivityTypePerformance
	profit  []ActivityProfitabilityRow
	users   []RecurrentUserRow
	records []ParticipationRecord

	dailyErr  error
	hourlyErr error
	rawErr    error
}

func (s *stubRepository) GetDailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error) {
	return s.daily, s.dailyErr
}

func (s *stubRepository) GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error) {
	return s.monthly, nil
}

func (s *stubRepository) GetHourlyParticipation(ctx context.Context) ([]HourlyParticipationPoint, error) {
	return s.hourly, s.hourlyErr
}

func (s *stubRepository) GetFacultyParticipation(ctx context.Context) ([]FacultyParticipationPoint, error) {
	return s.faculty, nil
}

func (s *stubRepository) GetActivityTypePerformance(ctx context.Context) ([]ActivityTypePerformance, error) {
	return s.types, nil
}

func (s *stubRepository) GetActivityProfitability(ctx context.Context, limit int) ([]ActivityProfitabilityRow, error) {
	return s.profit, nil
}

func (s *stubRepository) GetRecurrentUsers(ctx context.Context, limit int) ([]RecurrentUserRow, error) {
	return s.users, nil
}

func (s *stubRepository) GetRecentParticipations(ctx context.Context, limit int) ([]ParticipationRecord, error) {
	return s.records, s.rawErr
}

func newTestService(repo Repository) *service {
	return NewService(repo, NewEngine(DefaultEngineConfig()), DefaultFetchOptions())
}

func TestGetAggregateBundleMergesViews(t *testing.T) {
	repo := &stubRepository{
		daily:   []DailyRevenuePoint{{Day: "2026-08-10", Revenue: 500}},
		monthly: []MonthlyRevenuePoint{{Month: "2026-08", Revenue: 500}},
		records: []ParticipationRecord{{ID: uuid.New(), FullName: "a", ActivityID: uuid.New(), CreatedAt: time.Now()}},
	}
	svc := newTestService(repo)

	bundle, err := svc.GetAggregateBundle(context.Background())
	require.NoError(t, err)
	require.Equal(t, repo.daily, bundle.DailyRevenue)
	require.Equal(t, repo.monthly, bundle.MonthlyRevenue)
	require.Equal(t, repo.records, bundle.Participations)
}

func TestGetAggregateBundleFailedViewYieldsEmptySlice(t *testing.T) {
	repo := &stubRepository{
		daily:     []DailyRevenuePoint{{Day: "2026-08-10", Revenue: 500}},
		monthly:   []MonthlyRevenuePoint{{Month: "2026-08", Revenue: 500}},
		hourlyErr: errors.New("connection reset by peer"),
	}
	svc := newTestService(repo)

	bundle, err := svc.GetAggregateBundle(context.Background())
	require.NoError(t, err)
	require.Empty(t, bundle.HourlyParticipation)
	require.Equal(t, repo.monthly, bundle.MonthlyRevenue)
}

func TestGetAggregateBundleMissingViewsTriggerFallback(t *testing.T) {
	records := []ParticipationRecord{
		{
			ID: uuid.New(), FullName: "Jean Dupont", Kind: ParticipantStudent,
			Amount: 1000, CreatedAt: time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC),
			ActivityID: uuid.New(), ActivityType: "Formation", Faculty: "Faculté de Droit",
		},
	}
	repo := &stubRepository{
		// view-backed results that must NOT leak into the fallback bundle
		monthly:  []MonthlyRevenuePoint{{Month: "2026-01", Revenue: 99999}},
		dailyErr: errors.New(`ERROR: relation "v_analytics_daily_revenue" does not exist (SQLSTATE 42P01)`),
		records:  records,
	}
	svc := newTestService(repo)

	bundle, err := svc.GetAggregateBundle(context.Background())
	require.NoError(t, err)
	require.Equal(t, BuildBundleFromRecords(records), bundle)
}

func TestGetAggregateBundleFallbackFetchFailure(t *testing.T) {
	repo := &stubRepository{
		dailyErr: errors.New(`ERROR: relation "v_analytics_daily_revenue" does not exist (SQLSTATE 42P01)`),
		rawErr:   errors.New("connection refused"),
	}
	svc := newTestService(repo)

	_, err := svc.GetAggregateBundle(context.Background())
	require.Error(t, err)
}

func TestGetRevenueForecastBoundsPeriods(t *testing.T) {
	repo := &stubRepository{
		daily: []DailyRevenuePoint{
			{Day: "2026-08-08", Revenue: 100},
			{Day: "2026-08-09", Revenue: 100},
			{Day: "2026-08-10", Revenue: 100},
		},
	}
	svc := newTestService(repo)

	// out-of-range horizons fall back to the default of 3
	forecast, err := svc.GetRevenueForecast(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, forecast, 3)

	forecast, err = svc.GetRevenueForecast(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, forecast, 3)

	forecast, err = svc.GetRevenueForecast(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, forecast, 6)
}

func TestGetInsightReportRunsEngine(t *testing.T) {
	repo := &stubRepository{
		monthly: []MonthlyRevenuePoint{
			{Month: "2026-07", Revenue: 1000},
			{Month: "2026-08", Revenue: 2000},
		},
	}
	svc := newTestService(repo)

	report, err := svc.GetInsightReport(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.Financial)
	require.Contains(t, report.Financial[0].Text, "hausse")
}
