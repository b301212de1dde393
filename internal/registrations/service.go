package registrations

import (
	"context"
	"fmt"
	"log/slog"

	"registra/internal/shared/constants"
	"registra/pkg/cache"
	"registra/pkg/logger"

	"github.com/google/uuid"
)

// Service defines the registrations service interface
type Service interface {
	RegisterParticipation(ctx context.Context, req *CreateParticipationRequest) (*Participation, error)
	GetParticipation(ctx context.Context, id uuid.UUID) (*Participation, error)
	ListParticipations(ctx context.Context, page, limit int) ([]Participation, int64, error)
	DeleteParticipation(ctx context.Context, id uuid.UUID) error

	CreateActivity(ctx context.Context, req *CreateActivityRequest) (*Activity, error)
	ListActivities(ctx context.Context, activeOnly bool) ([]Activity, error)

	CreateFaculty(ctx context.Context, req *CreateFacultyRequest) (*Faculty, error)
	ListFaculties(ctx context.Context) ([]Faculty, error)

	SetCacheService(cacheService cache.Service)
}

// service implements the Service interface
type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

// NewService creates a new registrations service instance
func NewService(repo Repository) Service {
	return &service{repo: repo, log: logger.GetDefault()}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// invalidateAnalytics drops the derived analytics snapshots after a write
// so the next report reflects it immediately instead of after the TTL.
// Best-effort: the TTL bounds staleness either way.
func (s *service) invalidateAnalytics(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.AnalyticsPattern()); err != nil {
		s.log.Warn("failed to invalidate analytics cache", slog.Any("error", err))
	}
}

// RegisterParticipation records one registration. The activity must exist;
// a paid row with a zero amount falls back to the activity's default price
// so the revenue views stay honest, and a missing status defaults to
// pending.
func (s *service) RegisterParticipation(ctx context.Context, req *CreateParticipationRequest) (*Participation, error) {
	activity, err := s.repo.GetActivity(ctx, req.ActivityID)
	if err != nil {
		if err == ErrNotFound {
			return nil, fmt.Errorf("activity %s not found", req.ActivityID)
		}
		return nil, fmt.Errorf("failed to resolve activity: %w", err)
	}

	amount := req.Amount
	if amount == 0 && req.PaymentStatus == PaymentPaid {
		amount = activity.DefaultPrice
	}

	status := req.PaymentStatus
	if status == "" {
		status = PaymentPending
	}

	p := &Participation{
		FullName:      req.FullName,
		Kind:          req.Kind,
		Amount:        amount,
		PaymentStatus: status,
		ActivityID:    activity.ID,
		FacultyID:     req.FacultyID,
	}
	if err := s.repo.CreateParticipation(ctx, p); err != nil {
		return nil, err
	}

	s.log.LogParticipationRegistered(ctx, p.ID.String(), p.ActivityID.String())
	s.invalidateAnalytics(ctx)
	return p, nil
}

func (s *service) GetParticipation(ctx context.Context, id uuid.UUID) (*Participation, error) {
	return s.repo.GetParticipation(ctx, id)
}

func (s *service) ListParticipations(ctx context.Context, page, limit int) ([]Participation, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.repo.ListParticipations(ctx, (page-1)*limit, limit)
}

func (s *service) DeleteParticipation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteParticipation(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

func (s *service) CreateActivity(ctx context.Context, req *CreateActivityRequest) (*Activity, error) {
	a := &Activity{
		Name:         req.Name,
		TypeLabel:    req.TypeLabel,
		StartDate:    req.StartDate,
		Capacity:     req.Capacity,
		DefaultPrice: req.DefaultPrice,
		Active:       true,
	}
	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.DeletePattern(ctx, constants.ActivitiesPattern()); err != nil {
			s.log.Warn("failed to invalidate activities cache", slog.Any("error", err))
		}
	}
	return a, nil
}

func (s *service) ListActivities(ctx context.Context, activeOnly bool) ([]Activity, error) {
	if s.cacheService == nil {
		return s.repo.ListActivities(ctx, activeOnly)
	}

	var activities []Activity
	err := s.cacheService.GetOrSet(ctx, constants.BuildActivitiesListKey(activeOnly), constants.TTL_ACTIVITIES_LIST,
		func() (interface{}, error) {
			return s.repo.ListActivities(ctx, activeOnly)
		}, &activities)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *service) CreateFaculty(ctx context.Context, req *CreateFacultyRequest) (*Faculty, error) {
	f := &Faculty{Name: req.Name}
	if err := s.repo.CreateFaculty(ctx, f); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_FACULTIES_LIST); err != nil {
			s.log.Warn("failed to invalidate faculties cache", slog.Any("error", err))
		}
	}
	return f, nil
}

func (s *service) ListFaculties(ctx context.Context) ([]Faculty, error) {
	if s.cacheService == nil {
		return s.repo.ListFaculties(ctx)
	}

	var faculties []Faculty
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_FACULTIES_LIST, constants.TTL_FACULTIES_LIST,
		func() (interface{}, error) {
			return s.repo.ListFaculties(ctx)
		}, &faculties)
	if err != nil {
		return nil, err
	}
	return faculties, nil
}
