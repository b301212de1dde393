package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"registra/internal/alerts"
	"registra/internal/shared/constants"
	"registra/pkg/cache"
	"registra/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// FetchOptions bounds the aggregate fan-out fetch.
type FetchOptions struct {
	DailyWindowDays     int
	MonthlyWindowMonths int
	ProfitabilityLimit  int
	RecurrentLimit      int
	RawLimit            int
	FallbackRawLimit    int
}

// DefaultFetchOptions returns the windows the reporting screen uses.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		DailyWindowDays:     90,
		MonthlyWindowMonths: 12,
		ProfitabilityLimit:  15,
		RecurrentLimit:      30,
		RawLimit:            3000,
		FallbackRawLimit:    2000,
	}
}

// Service defines the analytics service interface
type Service interface {
	GetInsightReport(ctx context.Context) (*InsightReport, error)
	GetRevenueForecast(ctx context.Context, periods int) ([]ForecastPoint, error)
	GetAggregateBundle(ctx context.Context) (*AggregateBundle, error)
}

// service implements the Service interface
type service struct {
	repo         Repository
	engine       *Engine
	opts         FetchOptions
	cacheService cache.Service
	publisher    alerts.Publisher
	log          *logger.Logger
}

// NewService creates a new analytics service instance
func NewService(repo Repository, engine *Engine, opts FetchOptions) *service {
	return &service{
		repo:   repo,
		engine: engine,
		opts:   opts,
		log:    logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetAlertPublisher injects the anomaly alert publisher
func (s *service) SetAlertPublisher(publisher alerts.Publisher) {
	s.publisher = publisher
}

// GetInsightReport fetches one aggregate bundle and runs the full engine
// over it. The report is cached; anomaly alerts go out best-effort and
// never fail the request.
func (s *service) GetInsightReport(ctx context.Context) (*InsightReport, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_REPORT

	if s.cacheService != nil {
		var cached InsightReport
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	bundle, err := s.fetchBundle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aggregate bundle: %w", err)
	}

	start := time.Now()
	report := s.engine.Run(bundle)

	insights := len(report.Financial) + len(report.Participation) + len(report.Activity) + len(report.Behavioral)
	anomalies := len(report.Anomalies.Duplicates) + len(report.Anomalies.PaymentOutliers)
	s.log.LogReportGenerated(ctx, insights, anomalies, len(report.Recommendations), time.Since(start))

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, report, constants.TTL_ANALYTICS_REPORT); err != nil {
			s.log.Warn("failed to cache insight report", slog.Any("error", err))
		}
	}

	s.publishAnomalyAlerts(ctx, report)

	return report, nil
}

// GetRevenueForecast projects daily revenue over the requested horizon from
// the bundle's daily history.
func (s *service) GetRevenueForecast(ctx context.Context, periods int) ([]ForecastPoint, error) {
	if periods <= 0 || periods > 12 {
		periods = 3
	}

	cacheKey := constants.BuildAnalyticsForecastKey(periods)
	if s.cacheService != nil {
		var cached []ForecastPoint
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	bundle, err := s.fetchBundle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aggregate bundle: %w", err)
	}

	history := make([]float64, len(bundle.DailyRevenue))
	for i, d := range bundle.DailyRevenue {
		history[i] = safeAmount(d.Revenue)
	}
	forecast := SimpleForecast(history, periods)

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, forecast, constants.TTL_ANALYTICS_FORECAST); err != nil {
			s.log.Warn("failed to cache revenue forecast", slog.Any("error", err))
		}
	}

	return forecast, nil
}

// GetAggregateBundle exposes the raw aggregate views for chart endpoints.
func (s *service) GetAggregateBundle(ctx context.Context) (*AggregateBundle, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_BUNDLE
	if s.cacheService != nil {
		var cached AggregateBundle
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	bundle, err := s.fetchBundle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aggregate bundle: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, bundle, constants.TTL_ANALYTICS_BUNDLE); err != nil {
			s.log.Warn("failed to cache aggregate bundle", slog.Any("error", err))
		}
	}

	return bundle, nil
}

// fetchBundle fans out over the eight read queries concurrently and joins
// the results into one bundle. A failed view query yields an empty slice;
// if the precomputed views are missing entirely, every shape is recomputed
// from one bounded raw fetch instead, so a bundle never mixes view-backed
// and recomputed aggregates. The only error that can surface is a raw fetch
// the fallback path itself cannot satisfy.
func (s *service) fetchBundle(ctx context.Context) (*AggregateBundle, error) {
	bundle := &AggregateBundle{}
	errs := make([]error, 8)

	var g errgroup.Group
	g.Go(func() error {
		bundle.DailyRevenue, errs[0] = s.repo.GetDailyRevenue(ctx, s.opts.DailyWindowDays)
		return nil
	})
	g.Go(func() error {
		bundle.MonthlyRevenue, errs[1] = s.repo.GetMonthlyRevenue(ctx, s.opts.MonthlyWindowMonths)
		return nil
	})
	g.Go(func() error {
		bundle.HourlyParticipation, errs[2] = s.repo.GetHourlyParticipation(ctx)
		return nil
	})
	g.Go(func() error {
		bundle.FacultyParticipation, errs[3] = s.repo.GetFacultyParticipation(ctx)
		return nil
	})
	g.Go(func() error {
		bundle.ActivityTypePerf, errs[4] = s.repo.GetActivityTypePerformance(ctx)
		return nil
	})
	g.Go(func() error {
		bundle.ActivityProfitability, errs[5] = s.repo.GetActivityProfitability(ctx, s.opts.ProfitabilityLimit)
		return nil
	})
	g.Go(func() error {
		bundle.RecurrentUsers, errs[6] = s.repo.GetRecurrentUsers(ctx, s.opts.RecurrentLimit)
		return nil
	})
	g.Go(func() error {
		bundle.Participations, errs[7] = s.repo.GetRecentParticipations(ctx, s.opts.RawLimit)
		return nil
	})
	g.Wait()

	for _, err := range errs {
		if isMissingRelation(err) {
			return s.fallbackBundle(ctx)
		}
	}
	for i, err := range errs {
		if err != nil {
			s.log.Warn("analytics view fetch failed, substituting empty result",
				slog.Int("view", i), slog.Any("error", err))
		}
	}
	// failed slots stay nil: empty result, never a partial fallback

	return bundle, nil
}

// fallbackBundle recomputes every aggregate shape from raw records.
func (s *service) fallbackBundle(ctx context.Context) (*AggregateBundle, error) {
	s.log.Warn("analytics views unavailable, recomputing aggregates from raw records")

	records, err := s.repo.GetRecentParticipations(ctx, s.opts.FallbackRawLimit)
	if err != nil {
		return nil, fmt.Errorf("fallback participation fetch failed: %w", err)
	}
	return BuildBundleFromRecords(records), nil
}

// publishAnomalyAlerts pushes one alert per non-empty anomaly list.
// Fire-and-forget: a dead broker must never break report generation.
func (s *service) publishAnomalyAlerts(ctx context.Context, report *InsightReport) {
	if s.publisher == nil {
		return
	}

	if n := len(report.Anomalies.Duplicates); n > 0 {
		alert := &alerts.Alert{
			Kind:     alerts.KindDuplicateRegistrations,
			Severity: "warning",
			Message:  fmt.Sprintf("%d inscription(s) en double potentielle(s) détectée(s)", n),
			Count:    n,
		}
		if err := s.publisher.Publish(ctx, alert); err != nil {
			s.log.Warn("failed to publish duplicate alert", slog.Any("error", err))
		}
	}
	if n := len(report.Anomalies.PaymentOutliers); n > 0 {
		alert := &alerts.Alert{
			Kind:     alerts.KindPaymentOutliers,
			Severity: "warning",
			Message:  fmt.Sprintf("%d paiement(s) anormalement élevé(s) détecté(s)", n),
			Count:    n,
		}
		if err := s.publisher.Publish(ctx, alert); err != nil {
			s.log.Warn("failed to publish payment outlier alert", slog.Any("error", err))
		}
	}
}
