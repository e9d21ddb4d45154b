package funnel

import "github.com/onurcolak/blast-tracker/internal/domain"

// Stage is one bar of the blast funnel. Percentages are relative to Sent,
// ConversionRate to the previous stage and Width to the largest count.
type Stage struct {
	Label          string  `json:"label"`
	Count          int64   `json:"count"`
	Percentage     float64 `json:"percentage"`
	ConversionRate float64 `json:"conversionRate"`
	DropOff        float64 `json:"dropOff"`
	Width          float64 `json:"width"`
}

// Build turns raw counts into the five funnel stages in order.
func Build(m domain.BlastMetrics) []Stage {
	labels := []string{"Sent", "Received", "Read", "Replied", "Closed"}
	counts := []int64{m.Sent, m.Received, m.Read, m.Replied, m.Closed}

	var maxCount int64
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	stages := make([]Stage, len(counts))
	for i, count := range counts {
		s := Stage{Label: labels[i], Count: count}

		if i == 0 {
			s.Percentage = 100
			s.ConversionRate = 100
			s.Width = 100
			stages[i] = s
			continue
		}

		s.Percentage = ratio(count, m.Sent)
		s.ConversionRate = ratio(count, counts[i-1])
		s.Width = ratio(count, maxCount)
		// With nothing sent the pinned 100% of Sent is not a real baseline.
		if drop := stages[i-1].Percentage - s.Percentage; drop > 0 && m.Sent > 0 {
			s.DropOff = drop
		}

		stages[i] = s
	}

	return stages
}

func ratio(n, of int64) float64 {
	if of <= 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
