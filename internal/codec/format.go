package codec

import (
	"bytes"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	json "github.com/goccy/go-json"

	"moodchart/internal/models"
)

type SaveFormat int

const (
	FormatUnknown SaveFormat = iota
	FormatCurrent
	FormatLegacy
)

func (f SaveFormat) String() string {
	switch f {
	case FormatCurrent:
		return "current"
	case FormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// LegacyZone is the zone legacy unix-second timestamps were recorded in.
const LegacyZone = "America/Los_Angeles"

// DecodeFunc turns raw save bytes into entries or explains why it cannot.
// It must not retain data.
type DecodeFunc func(data []byte) ([]models.JournalEntry, error)

// Matcher binds a save format to its decoder. Matchers are tried in slice order.
type Matcher struct {
	Format SaveFormat
	Decode DecodeFunc
}

func DefaultMatchers() []Matcher {
	return []Matcher{
		{Format: FormatCurrent, Decode: decodeCurrent},
		{Format: FormatLegacy, Decode: decodeLegacy},
	}
}

type currentRecord struct {
	Rating     *float64          `json:"rating"`
	Date       *time.Time        `json:"date"`
	Note       *string           `json:"note"`
	Moods      []models.MoodTag  `json:"mood_tags"`
	Activities []models.Activity `json:"activities"`
}

type legacyRecord struct {
	Rating *float64 `json:"rating"`
	Date   *int64   `json:"date"`
	Note   *string  `json:"note"`
}

var errNotArray = errors.New("save data is not a JSON array")

func requireArray(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errNotArray
	}
	return nil
}

func decodeCurrent(data []byte) ([]models.JournalEntry, error) {
	if err := requireArray(data); err != nil {
		return nil, err
	}
	var records []currentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	entries := make([]models.JournalEntry, 0, len(records))
	for i, r := range records {
		if r.Rating == nil || r.Date == nil || r.Note == nil {
			return nil, fmt.Errorf("entry %d: missing rating, date or note", i)
		}
		e := models.NewJournalEntry(*r.Rating, *r.Date, *r.Note)
		if r.Moods != nil {
			e.Moods = r.Moods
		}
		if r.Activities != nil {
			e.Activities = r.Activities
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeLegacy(data []byte) ([]models.JournalEntry, error) {
	if err := requireArray(data); err != nil {
		return nil, err
	}
	var records []legacyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	zone, err := time.LoadLocation(LegacyZone)
	if err != nil {
		return nil, fmt.Errorf("load legacy zone: %w", err)
	}

	entries := make([]models.JournalEntry, 0, len(records))
	for i, r := range records {
		if r.Rating == nil || r.Date == nil || r.Note == nil {
			return nil, fmt.Errorf("entry %d: missing rating, date or note", i)
		}
		// The stored instant is Pacific wall time; entries are presented in the local zone.
		ts := time.Unix(*r.Date, 0).In(zone).In(time.Local)
		entries = append(entries, models.NewJournalEntry(*r.Rating, ts, *r.Note))
	}
	return entries, nil
}
