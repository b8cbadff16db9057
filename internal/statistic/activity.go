package statistic

import (
	"math"
	"sort"

	"moodchart/internal/models"
)

const (
	topActivities = 3
	quartile      = 0.25
)

// ActivityCorrelation ranks entries with activities by rating and reports the most
// frequent activities of the top and bottom quartile. The quartile size is taken from
// the entries that have activities, not from the whole collection.
func ActivityCorrelation(entries []models.JournalEntry) models.ActivityStats {
	ranked := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasActivities() {
			ranked = append(ranked, e)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	q := int(math.Floor(float64(len(ranked)) * quartile))
	return models.ActivityStats{
		Favorable:   summarize(ranked[:q]),
		Unfavorable: summarize(ranked[len(ranked)-q:]),
	}
}

func summarize(bucket []models.JournalEntry) models.ActivityBucket {
	counts := make(map[models.Activity]int)
	sum := 0.0
	for _, e := range bucket {
		sum += e.Rating
		for _, a := range e.Activities {
			counts[a]++
		}
	}

	top := make([]models.ActivityCount, 0, len(counts))
	for a, c := range counts {
		top = append(top, models.ActivityCount{Activity: a, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Activity < top[j].Activity
	})
	if len(top) > topActivities {
		top = top[:topActivities]
	}

	avg := models.Undefined()
	if len(bucket) > 0 {
		avg = models.Average(sum / float64(len(bucket)))
	}
	return models.ActivityBucket{
		TopActivities:  top,
		AverageRating:  avg,
		EntriesCounted: len(bucket),
	}
}
