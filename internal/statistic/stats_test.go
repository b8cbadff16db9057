package statistic

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodchart/internal/models"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func atHours(hours ...float64) []models.JournalEntry {
	out := make([]models.JournalEntry, len(hours))
	for i, h := range hours {
		out[i] = models.NewJournalEntry(50, base.Add(time.Duration(h*float64(time.Hour))), "")
	}
	return out
}

func withActivities(rating float64, names ...string) models.JournalEntry {
	e := models.NewJournalEntry(rating, base, "")
	for _, n := range names {
		e.Activities = append(e.Activities, models.NewActivity(n))
	}
	return e
}

func TestWeekdayAverages_MondayTuesday(t *testing.T) {
	monday := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	avgs := WeekdayAverages([]models.JournalEntry{
		models.NewJournalEntry(80, monday, ""),
		models.NewJournalEntry(40, monday.AddDate(0, 0, 1), ""),
	})

	assert.Equal(t, 80.0, avgs.For(time.Monday).Float64())
	assert.Equal(t, 40.0, avgs.For(time.Tuesday).Float64())
	for _, day := range []time.Weekday{time.Sunday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		assert.True(t, math.IsNaN(avgs.For(day).Float64()), "%s should be NaN", day)
		assert.False(t, avgs.For(day).Defined())
	}
}

func TestWeekdayAverages_UsesEntryZone(t *testing.T) {
	east := time.FixedZone("east", 10*3600)
	// Monday 02:00 in east is still Sunday in UTC.
	entry := models.NewJournalEntry(60, time.Date(2024, 5, 6, 2, 0, 0, 0, east), "")

	avgs := WeekdayAverages([]models.JournalEntry{entry})
	assert.Equal(t, 60.0, avgs.For(time.Monday).Float64())
	assert.False(t, avgs.For(time.Sunday).Defined())
}

func TestWeekdayAverages_Mean(t *testing.T) {
	monday := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	avgs := WeekdayAverages([]models.JournalEntry{
		models.NewJournalEntry(10, monday, ""),
		models.NewJournalEntry(20, monday.AddDate(0, 0, 7), ""),
		models.NewJournalEntry(60, monday.AddDate(0, 0, 14), ""),
	})
	assert.Equal(t, 30.0, avgs.For(time.Monday).Float64())
}

func TestWeekdayAverages_Empty(t *testing.T) {
	avgs := WeekdayAverages(nil)
	for _, a := range avgs {
		assert.False(t, a.Defined())
	}
}

func TestLongestStreak_Fixture(t *testing.T) {
	entries := atHours(0, 10, 40, 50, 60)

	assert.Equal(t, models.Streak{Start: 2, End: 5, Length: 3}, LongestStreak(entries, 24, StartReference))
	assert.Equal(t, models.Streak{Start: 2, End: 5, Length: 3}, LongestStreak(entries, 24, StartLoop))
}

func TestLongestStreak_Cases(t *testing.T) {
	tests := []struct {
		name     string
		hours    []float64
		leniency uint32
		want     models.Streak
	}{
		{"empty", nil, 36, models.Streak{}},
		{"single", []float64{5}, 36, models.Streak{Start: 0, End: 1, Length: 1}},
		{"all consecutive", []float64{0, 24, 48, 72}, 36, models.Streak{Start: 0, End: 4, Length: 4}},
		{"none consecutive", []float64{0, 100, 200}, 36, models.Streak{Start: 0, End: 1, Length: 1}},
		{"first run wins ties", []float64{0, 10, 100, 110}, 24, models.Streak{Start: 0, End: 2, Length: 2}},
		{"later longer run", []float64{0, 100, 110, 120, 130}, 24, models.Streak{Start: 1, End: 5, Length: 4}},
		{"gap equal to leniency", []float64{0, 24, 48}, 24, models.Streak{Start: 0, End: 3, Length: 3}},
		{"partial hour truncated", []float64{0, 24.9}, 24, models.Streak{Start: 0, End: 2, Length: 2}},
		{"one hour over", []float64{0, 25}, 24, models.Streak{Start: 0, End: 1, Length: 1}},
		{"zero leniency same hour", []float64{0, 0.5, 1.5}, 0, models.Streak{Start: 0, End: 2, Length: 2}},
		{"middle run", []float64{0, 50, 60, 70, 200, 210}, 24, models.Streak{Start: 1, End: 4, Length: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := atHours(tt.hours...)
			assert.Equal(t, tt.want, LongestStreak(entries, tt.leniency, StartReference))
			assert.Equal(t, tt.want, LongestStreak(entries, tt.leniency, StartLoop))
		})
	}
}

func TestActivityCorrelation_Buckets(t *testing.T) {
	entries := []models.JournalEntry{
		withActivities(90, "running", "reading"),
		withActivities(85, "running"),
		withActivities(60, "tv"),
		withActivities(50, "tv"),
		withActivities(45, "work"),
		withActivities(40, "work"),
		withActivities(20, "work", "commute"),
		withActivities(10, "commute", "work"),
		models.NewJournalEntry(100, base, "no activities"),
		models.NewJournalEntry(0, base, "no activities"),
	}

	stats := ActivityCorrelation(entries)

	assert.Equal(t, 2, stats.Favorable.EntriesCounted)
	assert.Equal(t, 87.5, stats.Favorable.AverageRating.Float64())
	assert.Equal(t, []models.ActivityCount{
		{Activity: "running", Count: 2},
		{Activity: "reading", Count: 1},
	}, stats.Favorable.TopActivities)

	assert.Equal(t, 2, stats.Unfavorable.EntriesCounted)
	assert.Equal(t, 15.0, stats.Unfavorable.AverageRating.Float64())
	assert.Equal(t, []models.ActivityCount{
		{Activity: "commute", Count: 2},
		{Activity: "work", Count: 2},
	}, stats.Unfavorable.TopActivities)
}

func TestActivityCorrelation_TieBreakIsAlphabetical(t *testing.T) {
	entries := []models.JournalEntry{
		withActivities(99, "yoga", "cooking", "music", "art"),
		withActivities(1, "sleep"),
		withActivities(2, "sleep"),
		withActivities(3, "sleep"),
	}

	want := []models.ActivityCount{
		{Activity: "art", Count: 1},
		{Activity: "cooking", Count: 1},
		{Activity: "music", Count: 1},
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, ActivityCorrelation(entries).Favorable.TopActivities)
	}
}

func TestActivityCorrelation_EmptyBuckets(t *testing.T) {
	entries := []models.JournalEntry{
		withActivities(70, "walk"),
		withActivities(30, "walk"),
		withActivities(50, "walk"),
		models.NewJournalEntry(10, base, ""),
	}

	stats := ActivityCorrelation(entries)
	assert.Equal(t, 0, stats.Favorable.EntriesCounted)
	assert.Empty(t, stats.Favorable.TopActivities)
	assert.NotNil(t, stats.Favorable.TopActivities)
	assert.True(t, math.IsNaN(stats.Favorable.AverageRating.Float64()))
	assert.True(t, math.IsNaN(stats.Unfavorable.AverageRating.Float64()))

	none := ActivityCorrelation(nil)
	assert.Equal(t, 0, none.Unfavorable.EntriesCounted)
}

func TestActivityCorrelation_TopThreeOnly(t *testing.T) {
	var entries []models.JournalEntry
	entries = append(entries, withActivities(100, "a", "b", "c", "d", "d", "c"))
	for i := 0; i < 3; i++ {
		entries = append(entries, withActivities(float64(i), "x"))
	}

	top := ActivityCorrelation(entries).Favorable.TopActivities
	assert.Equal(t, []models.ActivityCount{
		{Activity: "c", Count: 2},
		{Activity: "d", Count: 2},
		{Activity: "a", Count: 1},
	}, top)
}
