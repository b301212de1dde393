package registrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Repository defines the registrations repository interface
type Repository interface {
	CreateParticipation(ctx context.Context, p *Participation) error
	GetParticipation(ctx context.Context, id uuid.UUID) (*Participation, error)
	ListParticipations(ctx context.Context, offset, limit int) ([]Participation, int64, error)
	DeleteParticipation(ctx context.Context, id uuid.UUID) error

	CreateActivity(ctx context.Context, a *Activity) error
	GetActivity(ctx context.Context, id uuid.UUID) (*Activity, error)
	ListActivities(ctx context.Context, activeOnly bool) ([]Activity, error)

	CreateFaculty(ctx context.Context, f *Faculty) error
	ListFaculties(ctx context.Context) ([]Faculty, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new registrations repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateParticipation(ctx context.Context, p *Participation) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create participation: %w", err)
	}
	return nil
}

func (r *repository) GetParticipation(ctx context.Context, id uuid.UUID) (*Participation, error) {
	var p Participation
	err := r.db.WithContext(ctx).
		Preload("Activity").
		Preload("Faculty").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	return &p, nil
}

func (r *repository) ListParticipations(ctx context.Context, offset, limit int) ([]Participation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Participation{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count participations: %w", err)
	}

	var participations []Participation
	err := r.db.WithContext(ctx).
		Preload("Activity").
		Preload("Faculty").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&participations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, total, nil
}

func (r *repository) DeleteParticipation(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Participation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete participation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreateActivity(ctx context.Context, a *Activity) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *repository) GetActivity(ctx context.Context, id uuid.UUID) (*Activity, error) {
	var a Activity
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &a, nil
}

func (r *repository) ListActivities(ctx context.Context, activeOnly bool) ([]Activity, error) {
	query := r.db.WithContext(ctx).Order("start_date DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var activities []Activity
	if err := query.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (r *repository) CreateFaculty(ctx context.Context, f *Faculty) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to create faculty: %w", err)
	}
	return nil
}

func (r *repository) ListFaculties(ctx context.Context) ([]Faculty, error) {
	var faculties []Faculty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&faculties).Error; err != nil {
		return nil, fmt.Errorf("failed to list faculties: %w", err)
	}
	return faculties, nil
}
