package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func record(name string, activityID uuid.UUID, amount float64, createdAt time.Time) ParticipationRecord {
	return ParticipationRecord{
		ID:         uuid.New(),
		FullName:   name,
		Kind:       ParticipantStudent,
		Amount:     amount,
		CreatedAt:  createdAt,
		ActivityID: activityID,
	}
}

func TestDetectDuplicateCandidatesCaseInsensitive(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	records := []ParticipationRecord{
		record("Jean Dupont", activity, 1000, base),
		record("  jean dupont ", activity, 1000, base.Add(time.Hour)),
	}

	duplicates := engine.DetectDuplicateCandidates(records)
	require.Len(t, duplicates, 1)
	require.Equal(t, "Jean Dupont", duplicates[0].Previous.FullName)
	require.InDelta(t, 1.0, duplicates[0].HoursApart, 1e-9)
}

func TestDetectDuplicateCandidatesWindowBoundary(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	inside := []ParticipationRecord{
		record("Marie Ilunga", activity, 0, base),
		record("Marie Ilunga", activity, 0, base.Add(23*time.Hour+59*time.Minute)),
	}
	require.Len(t, engine.DetectDuplicateCandidates(inside), 1)

	outside := []ParticipationRecord{
		record("Marie Ilunga", activity, 0, base),
		record("Marie Ilunga", activity, 0, base.Add(24*time.Hour+time.Minute)),
	}
	require.Empty(t, engine.DetectDuplicateCandidates(outside))
}

func TestDetectDuplicateCandidatesDifferentActivity(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	records := []ParticipationRecord{
		record("Jean Dupont", uuid.New(), 1000, base),
		record("Jean Dupont", uuid.New(), 1000, base.Add(time.Hour)),
	}
	require.Empty(t, engine.DetectDuplicateCandidates(records))
}

func TestDetectPaymentOutliersSmallSample(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Now()

	// four positive payments: below the minimum sample, even an extreme
	// amount is not an outlier
	records := []ParticipationRecord{
		record("a", activity, 100, base),
		record("b", activity, 100, base),
		record("c", activity, 100, base),
		record("d", activity, 1000000, base),
		record("e", activity, 0, base), // zero amounts do not count
	}
	require.Nil(t, engine.DetectPaymentOutliers(records))
}

func TestDetectPaymentOutliersFlagsExtremePayment(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Now()

	var records []ParticipationRecord
	for i := 0; i < 19; i++ {
		records = append(records, record("normal", activity, 100, base))
	}
	records = append(records, record("extreme", activity, 10000, base))

	outliers := engine.DetectPaymentOutliers(records)
	require.Len(t, outliers, 1)
	require.Equal(t, 10000.0, outliers[0].Record.Amount)
	require.Greater(t, outliers[0].ZScore, 3.0)
}

func TestDetectPaymentOutliersUniformAmounts(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	activity := uuid.New()
	base := time.Now()

	var records []ParticipationRecord
	for i := 0; i < 10; i++ {
		records = append(records, record("x", activity, 500, base))
	}
	require.Empty(t, engine.DetectPaymentOutliers(records))
}
