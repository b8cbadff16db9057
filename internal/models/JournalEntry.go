package models

import (
	"fmt"
	"time"
)

// Activity is a user-defined activity name attached to an entry.
type Activity string

func NewActivity(name string) Activity {
	return Activity(name)
}

func (a Activity) Name() string {
	return string(a)
}

// JournalEntry is one logged day. Rating is nominally 0..100 but is not clamped,
// and Moods may contain duplicates; nothing here validates either.
type JournalEntry struct {
	Rating     float64    `json:"rating"`
	Timestamp  time.Time  `json:"date"`
	Note       string     `json:"note"`
	Moods      []MoodTag  `json:"mood_tags"`
	Activities []Activity `json:"activities"`
}

func NewJournalEntry(rating float64, timestamp time.Time, note string) JournalEntry {
	return JournalEntry{
		Rating:     rating,
		Timestamp:  timestamp,
		Note:       note,
		Moods:      []MoodTag{},
		Activities: []Activity{},
	}
}

func (e JournalEntry) HasActivities() bool {
	return len(e.Activities) > 0
}

// HourDifference returns the absolute distance between two entries in whole seconds.
func (e JournalEntry) HourDifference(other JournalEntry) int64 {
	d := e.Timestamp.Unix() - other.Timestamp.Unix()
	if d < 0 {
		return -d
	}
	return d
}

// Equal compares field by field. Timestamps compare as instants with the same UTC offset,
// and nil slices equal empty ones.
func (e JournalEntry) Equal(other JournalEntry) bool {
	if e.Rating != other.Rating || e.Note != other.Note {
		return false
	}
	if !e.Timestamp.Equal(other.Timestamp) {
		return false
	}
	_, off1 := e.Timestamp.Zone()
	_, off2 := other.Timestamp.Zone()
	if off1 != off2 {
		return false
	}
	if len(e.Moods) != len(other.Moods) || len(e.Activities) != len(other.Activities) {
		return false
	}
	for i := range e.Moods {
		if e.Moods[i] != other.Moods[i] {
			return false
		}
	}
	for i := range e.Activities {
		if e.Activities[i] != other.Activities[i] {
			return false
		}
	}
	return true
}

func (e JournalEntry) String() string {
	return fmt.Sprintf("Date: %s\nRating: %v\n%s", e.Timestamp.Format("1-2-2006 3:04 PM"), e.Rating, e.Note)
}
