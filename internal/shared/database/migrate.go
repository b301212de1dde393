package database

import (
	"fmt"
	"log"

	"registra/internal/registrations"

	"gorm.io/gorm"
)

// Migrate creates the base tables and the analytics views.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	if err := db.AutoMigrate(
		&registrations.Faculty{},
		&registrations.Activity{},
		&registrations.Participation{},
	); err != nil {
		return err
	}

	// The analytics views are an optimization, not a requirement: when they
	// cannot be created the engine recomputes every shape from raw rows, so
	// a failure here is logged and swallowed.
	if err := createAnalyticsViews(db); err != nil {
		log.Printf("warning: failed to create analytics views, engine will use fallback aggregation: %v", err)
	}

	return nil
}

// createAnalyticsViews defines the seven precomputed aggregate views the
// insight engine fans out over. Column names match the analytics package's
// scan structs.
func createAnalyticsViews(db *gorm.DB) error {
	views := []string{
		`CREATE OR REPLACE VIEW v_analytics_daily_revenue AS
		 SELECT to_char(p.created_at, 'YYYY-MM-DD') AS day,
		        COALESCE(SUM(p.amount), 0) AS revenue,
		        COUNT(*) AS participations
		 FROM participations p
		 GROUP BY 1`,

		`CREATE OR REPLACE VIEW v_analytics_monthly_revenue AS
		 SELECT to_char(p.created_at, 'YYYY-MM') AS month,
		        COALESCE(SUM(p.amount), 0) AS revenue,
		        COUNT(*) FILTER (WHERE p.amount > 0) AS payments
		 FROM participations p
		 GROUP BY 1`,

		`CREATE OR REPLACE VIEW v_analytics_hourly_participation AS
		 SELECT EXTRACT(HOUR FROM p.created_at)::int AS hour,
		        EXTRACT(DOW FROM p.created_at)::int AS weekday,
		        COUNT(*) AS participations,
		        COALESCE(SUM(p.amount), 0) AS revenue
		 FROM participations p
		 GROUP BY 1, 2`,

		`CREATE OR REPLACE VIEW v_analytics_faculty_participation AS
		 SELECT COALESCE(f.name, 'Non renseignée') AS faculty,
		        COUNT(*) AS participations,
		        COALESCE(SUM(p.amount), 0) AS revenue,
		        COUNT(*) FILTER (WHERE p.kind = 'etudiant') AS students,
		        COUNT(*) FILTER (WHERE p.kind <> 'etudiant') AS visitors
		 FROM participations p
		 LEFT JOIN faculties f ON f.id = p.faculty_id
		 GROUP BY 1`,

		`CREATE OR REPLACE VIEW v_analytics_activity_type_performance AS
		 SELECT COALESCE(a.type_label, 'Autre') AS type,
		        COALESCE(SUM(p.amount), 0) AS revenue,
		        COUNT(*) AS participations
		 FROM participations p
		 LEFT JOIN activities a ON a.id = p.activity_id
		 GROUP BY 1`,

		`CREATE OR REPLACE VIEW v_analytics_activity_profitability AS
		 SELECT a.id AS activity_id,
		        a.name,
		        a.type_label AS type,
		        COUNT(p.id) AS participants,
		        COALESCE(SUM(p.amount), 0) AS revenue,
		        a.capacity,
		        CASE WHEN a.capacity > 0
		             THEN COUNT(p.id)::numeric * 100 / a.capacity
		             ELSE 0 END AS fill_rate_pct
		 FROM activities a
		 LEFT JOIN participations p ON p.activity_id = a.id
		 WHERE a.active
		 GROUP BY a.id, a.name, a.type_label, a.capacity`,

		`CREATE OR REPLACE VIEW v_analytics_recurrent_users AS
		 SELECT lower(trim(p.full_name)) AS name,
		        COUNT(*) AS participations,
		        COUNT(DISTINCT p.activity_id) AS distinct_activities,
		        COALESCE(SUM(p.amount), 0) AS total_spent
		 FROM participations p
		 GROUP BY 1
		 HAVING COUNT(*) > 1`,
	}

	for _, ddl := range views {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}
