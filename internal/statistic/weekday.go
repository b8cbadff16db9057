package statistic

import "moodchart/internal/models"

// WeekdayAverages averages ratings per weekday of each entry's own timestamp. A weekday
// without entries is undefined, never zero.
func WeekdayAverages(entries []models.JournalEntry) models.WeekdayAverages {
	var sums [7]float64
	var counts [7]int
	for _, e := range entries {
		day := e.Timestamp.Weekday()
		sums[day] += e.Rating
		counts[day]++
	}

	var out models.WeekdayAverages
	for day := range out {
		if counts[day] == 0 {
			out[day] = models.Undefined()
			continue
		}
		out[day] = models.Average(sums[day] / float64(counts[day]))
	}
	return out
}
