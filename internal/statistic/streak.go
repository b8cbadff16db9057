package statistic

import (
	"time"

	"moodchart/internal/models"
)

type StartMode string

const (
	// StartReference derives the start as max(0, end - length) from the previous best.
	StartReference StartMode = "reference"
	// StartLoop reports the index the best run was walked from.
	StartLoop StartMode = "loop"
)

// LongestStreak finds the longest run of entries whose consecutive gaps, truncated to
// whole hours, do not exceed leniencyHours. entries must be sorted by timestamp.
// The first run of maximal length wins.
func LongestStreak(entries []models.JournalEntry, leniencyHours uint32, mode StartMode) models.Streak {
	var start, end, best, bestFrom int

	for i := range entries {
		start = max(0, end-best)

		highest := 0
		prev := entries[i].Timestamp
		for _, e := range entries[i:] {
			if int64(e.Timestamp.Sub(prev)/time.Hour) > int64(leniencyHours) {
				break
			}
			highest++
			prev = e.Timestamp
		}

		if highest > best {
			best = highest
			end = i + highest
			bestFrom = i
		}
	}

	if mode == StartLoop {
		start = bestFrom
	}
	return models.Streak{Start: start, End: end, Length: best}
}
