package models

import (
	"math"
	"strconv"
	"time"
)

// Average is a mean that may be undefined. Undefined values are NaN in memory and null in JSON.
type Average float64

func Undefined() Average {
	return Average(math.NaN())
}

func (a Average) Defined() bool {
	return !math.IsNaN(float64(a))
}

func (a Average) Float64() float64 {
	return float64(a)
}

func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Defined() || math.IsInf(float64(a), 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(a), 'g', -1, 64), nil
}

func (a *Average) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Undefined()
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*a = Average(f)
	return nil
}

// WeekdayAverages is indexed by time.Weekday (Sunday first).
type WeekdayAverages [7]Average

func (w WeekdayAverages) For(day time.Weekday) Average {
	return w[day]
}

// Streak indices point into the sorted collection; End is exclusive.
type Streak struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Length int `json:"length"`
}

type ActivityCount struct {
	Activity Activity `json:"activity"`
	Count    int      `json:"count"`
}

type ActivityBucket struct {
	TopActivities  []ActivityCount `json:"top_activities"`
	AverageRating  Average         `json:"average_rating"`
	EntriesCounted int             `json:"entries_counted"`
}

type ActivityStats struct {
	Favorable   ActivityBucket `json:"favorable"`
	Unfavorable ActivityBucket `json:"unfavorable"`
}

// StatsSnapshot is derived data; it is recomputed in full whenever entries change.
type StatsSnapshot struct {
	WeekdayAverages WeekdayAverages `json:"weekday_averages"`
	Streak          Streak          `json:"streak"`
	ActivityStats   ActivityStats   `json:"activity_stats"`
	EntryCount      int             `json:"entry_count"`
}
