package statistic

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"

	"moodchart/internal/models"
	"moodchart/internal/providers"
	"moodchart/internal/structures"
)

type EngineInterface interface {
	Compute(entries []models.JournalEntry, leniencyHours uint32) models.StatsSnapshot
}

// Engine computes snapshots and memoizes them by collection content.
type Engine struct {
	mode    StartMode
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewEngine(conf *structures.Config, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *Engine {
	mode := StartMode(conf.Statistic.StreakStartMode)
	if mode != StartLoop {
		mode = StartReference
	}
	return &Engine{
		mode:    mode,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (e *Engine) Mode() StartMode {
	return e.mode
}

// Compute returns the snapshot of entries, which must be sorted by timestamp.
func (e *Engine) Compute(entries []models.JournalEntry, leniencyHours uint32) models.StatsSnapshot {
	key := e.cacheKey(entries, leniencyHours)
	if data, ok := e.cache.Get(key); ok {
		var snap models.StatsSnapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return snap
		}
		e.logger.Warnf(providers.TypeStats, "Discarding undecodable cached snapshot %s", key)
	}

	snap := models.StatsSnapshot{
		WeekdayAverages: WeekdayAverages(entries),
		Streak:          LongestStreak(entries, leniencyHours, e.mode),
		ActivityStats:   ActivityCorrelation(entries),
		EntryCount:      len(entries),
	}
	e.metrics.IncStatsRecomputed()
	e.logger.Debugf(providers.TypeStats, "Recomputed stats for %d entries, streak %d", len(entries), snap.Streak.Length)

	if data, err := json.Marshal(snap); err == nil {
		e.cache.Set(key, data)
	}
	return snap
}

func (e *Engine) cacheKey(entries []models.JournalEntry, leniencyHours uint32) string {
	return fmt.Sprintf("stats:%016x:%d:%s", Digest(entries), leniencyHours, e.mode)
}

// Digest hashes every field of every entry in order.
func Digest(entries []models.JournalEntry) uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		h.WriteString(s)
	}

	writeUint(uint64(len(entries)))
	for _, en := range entries {
		writeUint(math.Float64bits(en.Rating))
		writeUint(uint64(en.Timestamp.UnixNano()))
		_, offset := en.Timestamp.Zone()
		writeUint(uint64(int64(offset)))
		writeString(en.Note)
		writeUint(uint64(len(en.Moods)))
		for _, m := range en.Moods {
			writeUint(uint64(m))
		}
		writeUint(uint64(len(en.Activities)))
		for _, a := range en.Activities {
			writeString(string(a))
		}
	}
	return h.Sum64()
}
