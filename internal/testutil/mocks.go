package testutil

import (
	"sync"
	"time"

	"moodchart/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// ByLevel returns the recorded entries of one level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, l := range m.Logs {
		if l.Level == level {
			out = append(out, l)
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	EntriesTotal   int
	Saves          int
	Backups        int
	ManualBackups  int
	Pruned         int
	StatsRecompute int
	CacheHits      int
	CacheMisses    int
	Flushes        int
}

func (m *MockMetrics) SetEntriesTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesTotal = count
}

func (m *MockMetrics) ObserveSaveDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
}

func (m *MockMetrics) ObserveBackupDuration(_ time.Duration) {}

func (m *MockMetrics) IncBackupsCreated(manual bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Backups++
	if manual {
		m.ManualBackups++
	}
}

func (m *MockMetrics) AddBackupsPruned(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pruned += count
}

func (m *MockMetrics) IncStatsRecomputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatsRecompute++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCipher implements encryption.CipherInterface with injectable behavior.
// The default is a reversible XOR with the first key byte.
type MockCipher struct {
	EncryptFn func(key string, plain []byte) ([]byte, error)
	DecryptFn func(key string, data []byte) ([]byte, error)
}

func xorWith(key string, data []byte) []byte {
	out := make([]byte, len(data))
	var k byte
	if len(key) > 0 {
		k = key[0]
	}
	for i, b := range data {
		out[i] = b ^ k
	}
	return out
}

func (m *MockCipher) Encrypt(key string, plain []byte) ([]byte, error) {
	if m.EncryptFn != nil {
		return m.EncryptFn(key, plain)
	}
	return xorWith(key, plain), nil
}

func (m *MockCipher) Decrypt(key string, data []byte) ([]byte, error) {
	if m.DecryptFn != nil {
		return m.DecryptFn(key, data)
	}
	return xorWith(key, data), nil
}

// MockSaver implements backup.Saver.
type MockSaver struct {
	mu    sync.Mutex
	Calls int
	Err   error
	// OnSave runs before Err is returned, e.g. to write fixture files.
	OnSave func() error
}

func (m *MockSaver) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.OnSave != nil {
		if err := m.OnSave(); err != nil {
			return err
		}
	}
	return m.Err
}
