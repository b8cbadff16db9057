package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"moodchart/internal/codec"
	"moodchart/internal/encryption"
	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
	"moodchart/internal/statistic"
	"moodchart/internal/structures"
)

// ErrLocked is returned by Save while an encrypted save file waits for its passphrase.
var ErrLocked = errors.New("save file is encrypted and not yet decrypted")

// Store is the file layer the service persists through.
type Store interface {
	SaveEntries(entries []models.JournalEntry, encrypt bool, key string) error
	LoadEntries() ([]models.JournalEntry, codec.SaveFormat, error)
	DecryptEntries(data []byte, key string) ([]models.JournalEntry, error)
	SaveSession(session *models.Session) error
	LoadSession(now time.Time) *models.Session
}

type JournalServiceInterface interface {
	Load() error
	Decrypt(key string) error
	Save() error
	Locked() bool
	Entries() models.EntryCollection
	Add(entry models.JournalEntry)
	RemoveLast() (models.JournalEntry, bool)
	Update(index int, edit func(*models.JournalEntry)) error
	Stats() models.StatsSnapshot
	Session() models.Session
	UpdateOptions(edit func(*models.ProgramOptions))
	MarkBackup(at time.Time)
	SetKeys(primary, confirmation string)
	Errors() []*journalerr.Error
	IgnoreErrors(kind journalerr.Kind)
	DismissError(index int)
}

// JournalService owns the in-memory journal. Entries are kept sorted by timestamp and the
// stats snapshot is recomputed only after a change.
type JournalService struct {
	mu        sync.Mutex
	store     Store
	engine    statistic.EngineInterface
	keyPolicy encryption.KeyPolicy
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	now       func() time.Time

	entries       models.EntryCollection
	session       *models.Session
	primaryKey    string
	confirmKey    string
	pending       []byte
	errs          *journalerr.List
	snapshot      models.StatsSnapshot
	snapshotDirty bool
}

func NewJournalService(conf *structures.Config, store Store, engine statistic.EngineInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *JournalService {
	now := time.Now
	return &JournalService{
		store:  store,
		engine: engine,
		keyPolicy: encryption.KeyPolicy{
			MinLength: conf.Encryption.MinKeyLength,
			MaxLength: conf.Encryption.MaxKeyLength,
		},
		logger:        logger,
		metrics:       metrics,
		now:           now,
		entries:       models.EntryCollection{},
		session:       models.DefaultSession(now()),
		errs:          journalerr.NewList(),
		snapshotDirty: true,
	}
}

// Load reads the session and the journal. When the save file is encrypted the returned
// error carries the signal and the bytes are kept for Decrypt; the journal stays empty.
// Other failures are recorded in the error list and leave the current state untouched.
func (s *JournalService) Load() error {
	session := s.store.LoadSession(s.now())
	session.OpenModulus++

	entries, format, err := s.store.LoadEntries()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	if data, ok := journalerr.AsEncrypted(err); ok {
		s.pending = data
		s.logger.Infof(providers.TypeStorage, "Save file is encrypted, waiting for passphrase")
		return err
	}
	if err != nil {
		s.errs.Push(err)
		s.logger.Errorf(providers.TypeStorage, "Unable to load journal: %s", err)
		return err
	}

	s.replaceEntries(entries)
	s.pending = nil
	s.logger.Infof(providers.TypeStorage, "Loaded %d entries (%s format)", len(entries), format)
	return nil
}

// Decrypt consumes the pending encrypted save file. A wrong key leaves it pending.
func (s *JournalService) Decrypt(key string) error {
	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return journalerr.New(journalerr.KindDecryption, errors.New("no encrypted save file is pending"))
	}

	entries, err := s.store.DecryptEntries(pending, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceEntries(entries)
	s.pending = nil
	s.primaryKey = key
	s.confirmKey = key
	s.session.ProgramOptions.EncryptSaveFile = true
	return nil
}

func (s *JournalService) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Save writes the session, validates the passphrase pair when encryption is on, then
// writes the journal. Failures are recorded in the error list and returned.
func (s *JournalService) Save() error {
	start := time.Now()

	s.mu.Lock()
	if s.pending != nil {
		s.mu.Unlock()
		return journalerr.New(journalerr.KindWriteIO, ErrLocked)
	}
	s.session.LastOpenDate = s.now()
	session := *s.session
	entries := s.entries.Clone()
	encrypt := session.ProgramOptions.EncryptSaveFile
	primary, confirm := s.primaryKey, s.confirmKey
	s.mu.Unlock()

	err := s.store.SaveSession(&session)
	if err == nil && encrypt {
		err = s.keyPolicy.ValidatePair(primary, confirm)
	}
	if err == nil {
		err = s.store.SaveEntries(entries, encrypt, primary)
	}
	if err != nil {
		s.mu.Lock()
		s.errs.Push(err)
		s.mu.Unlock()
		s.logger.Errorf(providers.TypeStorage, "Save failed: %s", err)
		return err
	}

	s.metrics.ObserveSaveDuration(time.Since(start))
	return nil
}

func (s *JournalService) Entries() models.EntryCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Clone()
}

func (s *JournalService) Add(entry models.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.entries.Sort()
	s.changed()
}

// RemoveLast removes the most recent entry.
func (s *JournalService) RemoveLast() (models.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.entries.Last()
	if !ok {
		return models.JournalEntry{}, false
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.changed()
	return last, true
}

// Update edits the entry at index in place. Timestamp edits re-sort the journal.
func (s *JournalService) Update(index int, edit func(*models.JournalEntry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("entry index %d out of range [0, %d)", index, len(s.entries))
	}
	edit(&s.entries[index])
	s.entries.Sort()
	s.changed()
	return nil
}

func (s *JournalService) Stats() models.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshotDirty {
		s.snapshot = s.engine.Compute(s.entries, s.session.ProgramOptions.StreakLeniency)
		s.snapshotDirty = false
	}
	return s.snapshot
}

func (s *JournalService) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.session
}

// UpdateOptions edits the persisted options. Changing the streak leniency invalidates the stats.
func (s *JournalService) UpdateOptions(edit func(*models.ProgramOptions)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.session.ProgramOptions.StreakLeniency
	edit(&s.session.ProgramOptions)
	if s.session.ProgramOptions.StreakLeniency != before {
		s.snapshotDirty = true
	}
}

func (s *JournalService) MarkBackup(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.LastBackupDate = at
}

func (s *JournalService) SetKeys(primary, confirmation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primaryKey = primary
	s.confirmKey = confirmation
}

func (s *JournalService) Errors() []*journalerr.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs.Items()
}

func (s *JournalService) IgnoreErrors(kind journalerr.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.Ignore(kind)
}

func (s *JournalService) DismissError(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.Dismiss(index)
}

func (s *JournalService) replaceEntries(entries []models.JournalEntry) {
	s.entries = models.EntryCollection(entries)
	s.entries.Sort()
	s.changed()
}

func (s *JournalService) changed() {
	s.snapshotDirty = true
	s.metrics.SetEntriesTotal(len(s.entries))
}
