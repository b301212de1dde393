package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Repository defines the analytics read queries. The seven aggregate views
// are precomputed SQL views; the raw participation query reads the base
// table. Every query is optional from the engine's point of view.
type Repository interface {
	GetDailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error)
	GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error)
	GetHourlyParticipation(ctx context.Context) ([]HourlyParticipationPoint, error)
	GetFacultyParticipation(ctx context.Context) ([]FacultyParticipationPoint, error)
	GetActivityTypePerformance(ctx context.Context) ([]ActivityTypePerformance, error)
	GetActivityProfitability(ctx context.Context, limit int) ([]ActivityProfitabilityRow, error)
	GetRecurrentUsers(ctx context.Context, limit int) ([]RecurrentUserRow, error)
	GetRecentParticipations(ctx context.Context, limit int) ([]ParticipationRecord, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetDailyRevenue(ctx context.Context, days int) ([]DailyRevenuePoint, error) {
	from := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	var points []DailyRevenuePoint
	err := r.db.WithContext(ctx).
		Table("v_analytics_daily_revenue").
		Where("day >= ?", from).
		Order("day ASC").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily revenue: %w", err)
	}
	return points, nil
}

func (r *repository) GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error) {
	var points []MonthlyRevenuePoint
	err := r.db.WithContext(ctx).
		Table("v_analytics_monthly_revenue").
		Order("month DESC").
		Limit(months).
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly revenue: %w", err)
	}
	// newest-first fetch, chronological contract
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

func (r *repository) GetHourlyParticipation(ctx context.Context) ([]HourlyParticipationPoint, error) {
	var points []HourlyParticipationPoint
	err := r.db.WithContext(ctx).
		Table("v_analytics_hourly_participation").
		Order("weekday ASC, hour ASC").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly participation: %w", err)
	}
	return points, nil
}

func (r *repository) GetFacultyParticipation(ctx context.Context) ([]FacultyParticipationPoint, error) {
	var points []FacultyParticipationPoint
	err := r.db.WithContext(ctx).
		Table("v_analytics_faculty_participation").
		Order("participations DESC").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch faculty participation: %w", err)
	}
	return points, nil
}

func (r *repository) GetActivityTypePerformance(ctx context.Context) ([]ActivityTypePerformance, error) {
	var rows []ActivityTypePerformance
	err := r.db.WithContext(ctx).
		Table("v_analytics_activity_type_performance").
		Order("revenue DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity type performance: %w", err)
	}
	return rows, nil
}

func (r *repository) GetActivityProfitability(ctx context.Context, limit int) ([]ActivityProfitabilityRow, error) {
	var rows []ActivityProfitabilityRow
	err := r.db.WithContext(ctx).
		Table("v_analytics_activity_profitability").
		Order("revenue DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity profitability: %w", err)
	}
	return rows, nil
}

func (r *repository) GetRecurrentUsers(ctx context.Context, limit int) ([]RecurrentUserRow, error) {
	var rows []RecurrentUserRow
	err := r.db.WithContext(ctx).
		Table("v_analytics_recurrent_users").
		Order("participations DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recurrent users: %w", err)
	}
	return rows, nil
}

func (r *repository) GetRecentParticipations(ctx context.Context, limit int) ([]ParticipationRecord, error) {
	var records []ParticipationRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id,
		       p.full_name,
		       p.kind,
		       COALESCE(p.amount, 0)     AS amount,
		       p.payment_status,
		       p.created_at,
		       p.activity_id,
		       COALESCE(a.name, '')       AS activity_name,
		       COALESCE(a.type_label, '') AS activity_type,
		       COALESCE(a.capacity, 0)    AS capacity,
		       COALESCE(f.name, '')       AS faculty
		FROM participations p
		LEFT JOIN activities a ON a.id = p.activity_id
		LEFT JOIN faculties f ON f.id = p.faculty_id
		ORDER BY p.created_at DESC
		LIMIT ?`, limit).
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent participations: %w", err)
	}
	return records, nil
}

// isMissingRelation reports whether the error means the queried view does
// not exist (undefined_table). The analytics views are created together, so
// one missing view means the precomputed source as a whole is unavailable.
func isMissingRelation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 42P01") || strings.Contains(msg, "does not exist")
}
