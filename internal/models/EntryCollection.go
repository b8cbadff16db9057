package models

import "sort"

// EntryCollection is ordered by ascending timestamp once Sort has been called.
// Loading does not guarantee that order.
type EntryCollection []JournalEntry

func (c EntryCollection) Len() int { return len(c) }

func (c EntryCollection) Less(i, j int) bool { return c[i].Timestamp.Before(c[j].Timestamp) }

func (c EntryCollection) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c EntryCollection) Sort() {
	sort.Stable(c)
}

func (c EntryCollection) IsSorted() bool {
	return sort.IsSorted(c)
}

// Clone returns a deep copy so callers can hand the collection to other code safely.
func (c EntryCollection) Clone() EntryCollection {
	out := make(EntryCollection, len(c))
	for i, e := range c {
		out[i] = e
		out[i].Moods = append([]MoodTag{}, e.Moods...)
		out[i].Activities = append([]Activity{}, e.Activities...)
	}
	return out
}

func (c EntryCollection) Equal(other EntryCollection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Last returns the most recently appended entry.
func (c EntryCollection) Last() (JournalEntry, bool) {
	if len(c) == 0 {
		return JournalEntry{}, false
	}
	return c[len(c)-1], true
}
