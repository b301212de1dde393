package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for registra.
// Pattern: registra:{module}:{operation}:{params?}

const CACHE_PREFIX = "registra"

// Analytics results are derived snapshots: cheap to recompute, safe to
// serve slightly stale.
const (
	TTL_ANALYTICS_REPORT   = 10 * time.Minute
	TTL_ANALYTICS_BUNDLE   = 10 * time.Minute
	TTL_ANALYTICS_FORECAST = 10 * time.Minute
)

// Registration listings change with every secretarial action.
const (
	TTL_ACTIVITIES_LIST = 15 * time.Minute
	TTL_FACULTIES_LIST  = 1 * time.Hour
)

const (
	CACHE_KEY_ANALYTICS_REPORT = CACHE_PREFIX + ":analytics:report"
	CACHE_KEY_ANALYTICS_BUNDLE = CACHE_PREFIX + ":analytics:bundle"
	CACHE_KEY_FACULTIES_LIST   = CACHE_PREFIX + ":faculties:list"
)

// BuildAnalyticsForecastKey returns the cache key for a forecast horizon.
func BuildAnalyticsForecastKey(periods int) string {
	return fmt.Sprintf("%s:analytics:forecast:periods:%d", CACHE_PREFIX, periods)
}

// BuildActivitiesListKey returns the cache key for an activity listing.
func BuildActivitiesListKey(activeOnly bool) string {
	return fmt.Sprintf("%s:activities:list:active:%t", CACHE_PREFIX, activeOnly)
}

// ActivitiesPattern matches every cached activity listing.
func ActivitiesPattern() string {
	return CACHE_PREFIX + ":activities:*"
}

// AnalyticsPattern matches every cached analytics entry, for invalidation
// after bulk imports.
func AnalyticsPattern() string {
	return CACHE_PREFIX + ":analytics:*"
}
