package analytics

import (
	"strings"
)

// duplicateKey normalizes a registration to its dedup identity: lowercased,
// trimmed participant name plus the activity it belongs to.
func duplicateKey(r ParticipationRecord) string {
	return strings.ToLower(strings.TrimSpace(r.FullName)) + "|" + r.ActivityID.String()
}

// DetectDuplicateCandidates flags pairs of registrations sharing the same
// normalized name and activity created within the given window. Every later
// registration is compared against the first-seen one for its key only, not
// against the other later ones.
func (e *Engine) DetectDuplicateCandidates(records []ParticipationRecord) []DuplicateCandidate {
	seen := make(map[string]ParticipationRecord)
	var duplicates []DuplicateCandidate
	for _, r := range records {
		key := duplicateKey(r)
		first, ok := seen[key]
		if !ok {
			seen[key] = r
			continue
		}
		gap := r.CreatedAt.Sub(first.CreatedAt)
		if gap < 0 {
			gap = -gap
		}
		if gap < e.cfg.DuplicateWindow {
			duplicates = append(duplicates, DuplicateCandidate{
				Current:    r,
				Previous:   first,
				HoursApart: gap.Hours(),
			})
		}
	}
	return duplicates
}

// DetectPaymentOutliers flags payments whose amount sits more than the
// configured multiplier of standard deviations above the mean of all
// strictly positive amounts. With fewer than MinOutlierSample positive
// payments the sample is too small to call anything an outlier.
func (e *Engine) DetectPaymentOutliers(records []ParticipationRecord) []PaymentOutlier {
	var amounts []float64
	for _, r := range records {
		if amt := safeAmount(r.Amount); amt > 0 {
			amounts = append(amounts, amt)
		}
	}
	if len(amounts) < e.cfg.MinOutlierSample {
		return nil
	}

	m := Mean(amounts)
	s := StdDev(amounts)

	var outliers []PaymentOutlier
	for _, r := range records {
		amt := safeAmount(r.Amount)
		if amt <= 0 {
			continue
		}
		if z := ZScore(amt, m, s); z > e.cfg.OutlierMultiplier {
			outliers = append(outliers, PaymentOutlier{Record: r, ZScore: z})
		}
	}
	return outliers
}
