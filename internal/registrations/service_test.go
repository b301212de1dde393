package registrations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// stubRepository records created rows and serves one activity.
type stubRepository struct {
	activity *Activity

	createdParticipation *Participation
	createdActivity      *Activity
	createdFaculty       *Faculty
}

func (s *stubRepository) CreateParticipation(ctx context.Context, p *Participation) error {
	s.createdParticipation = p
	return nil
}

func (s *stubRepository) GetParticipation(ctx context.Context, id uuid.UUID) (*Participation, error) {
	return nil, ErrNotFound
}

func (s *stubRepository) ListParticipations(ctx context.Context, offset, limit int) ([]Participation, int64, error) {
	return nil, 0, nil
}

func (s *stubRepository) DeleteParticipation(ctx context.Context, id uuid.UUID) error {
	return ErrNotFound
}

func (s *stubRepository) CreateActivity(ctx context.Context, a *Activity) error {
	s.createdActivity = a
	return nil
}

func (s *stubRepository) GetActivity(ctx context.Context, id uuid.UUID) (*Activity, error) {
	if s.activity != nil && s.activity.ID == id {
		return s.activity, nil
	}
	return nil, ErrNotFound
}

func (s *stubRepository) ListActivities(ctx context.Context, activeOnly bool) ([]Activity, error) {
	return nil, nil
}

func (s *stubRepository) CreateFaculty(ctx context.Context, f *Faculty) error {
	s.createdFaculty = f
	return nil
}

func (s *stubRepository) ListFaculties(ctx context.Context) ([]Faculty, error) {
	return nil, nil
}

func TestRegisterParticipationDefaultsPaidAmountToPrice(t *testing.T) {
	activity := &Activity{ID: uuid.New(), Name: "Formation Excel", DefaultPrice: 5000}
	repo := &stubRepository{activity: activity}
	svc := NewService(repo)

	p, err := svc.RegisterParticipation(context.Background(), &CreateParticipationRequest{
		FullName:      "Jean Dupont",
		Kind:          KindStudent,
		Amount:        0,
		PaymentStatus: PaymentPaid,
		ActivityID:    activity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 5000.0, p.Amount)
	require.Equal(t, PaymentPaid, p.PaymentStatus)
	require.Equal(t, repo.createdParticipation, p)
}

func TestRegisterParticipationDefaultsStatusToPending(t *testing.T) {
	activity := &Activity{ID: uuid.New(), Name: "Atelier CV", DefaultPrice: 1000}
	repo := &stubRepository{activity: activity}
	svc := NewService(repo)

	p, err := svc.RegisterParticipation(context.Background(), &CreateParticipationRequest{
		FullName:   "Marie Ilunga",
		Kind:       KindVisitor,
		ActivityID: activity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, PaymentPending, p.PaymentStatus)
	// a pending row never inherits the default price
	require.Equal(t, 0.0, p.Amount)
}

func TestRegisterParticipationKeepsExplicitAmount(t *testing.T) {
	activity := &Activity{ID: uuid.New(), Name: "Formation Excel", DefaultPrice: 5000}
	repo := &stubRepository{activity: activity}
	svc := NewService(repo)

	p, err := svc.RegisterParticipation(context.Background(), &CreateParticipationRequest{
		FullName:      "Jean Dupont",
		Kind:          KindStudent,
		Amount:        2500,
		PaymentStatus: PaymentPaid,
		ActivityID:    activity.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 2500.0, p.Amount)
}

func TestRegisterParticipationUnknownActivity(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)

	_, err := svc.RegisterParticipation(context.Background(), &CreateParticipationRequest{
		FullName:   "Jean Dupont",
		Kind:       KindStudent,
		ActivityID: uuid.New(),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
	require.Nil(t, repo.createdParticipation)
}

func TestCreateActivityIsActiveByDefault(t *testing.T) {
	repo := &stubRepository{}
	svc := NewService(repo)

	a, err := svc.CreateActivity(context.Background(), &CreateActivityRequest{
		Name:         "Formation Python Débutant",
		TypeLabel:    "Formation",
		Capacity:     35,
		DefaultPrice: 6000,
	})
	require.NoError(t, err)
	require.True(t, a.Active)
	require.Equal(t, repo.createdActivity, a)
}
