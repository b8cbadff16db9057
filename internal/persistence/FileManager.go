package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"moodchart/internal/codec"
	"moodchart/internal/encryption"
	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
	"moodchart/internal/structures"
)

// Paths are the canonical on-disk files. Backups store members under their base names.
type Paths struct {
	Save       string
	LegacySave string
	Session    string
}

func PathsFromConfig(conf *structures.Config) Paths {
	dir := conf.Storage.DataDir
	return Paths{
		Save:       filepath.Join(dir, conf.Storage.SaveFile),
		LegacySave: filepath.Join(dir, conf.Storage.LegacySaveFile),
		Session:    filepath.Join(dir, conf.Storage.SessionFile),
	}
}

type FileManager struct {
	paths  Paths
	codec  codec.CodecInterface
	cipher encryption.CipherInterface
	logger providers.Logger
}

func NewFileManager(conf *structures.Config, c *codec.Codec, cipher *encryption.Cipher, logger providers.Logger) *FileManager {
	return NewFileManagerWith(PathsFromConfig(conf), c, cipher, logger)
}

func NewFileManagerWith(paths Paths, c codec.CodecInterface, cipher encryption.CipherInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		paths:  paths,
		codec:  c,
		cipher: cipher,
		logger: logger,
	}
}

func (f *FileManager) Paths() Paths {
	return f.paths
}

// SaveEntries encodes entries, encrypts them with key when encrypt is set, and replaces
// the save file atomically. A failed write leaves the previous file untouched.
func (f *FileManager) SaveEntries(entries []models.JournalEntry, encrypt bool, key string) error {
	data, err := f.codec.Save(entries)
	if err != nil {
		return err
	}

	if encrypt {
		data, err = f.cipher.Encrypt(key, data)
		if err != nil {
			return err
		}
	}

	if err := writeAtomic(f.paths.Save, data); err != nil {
		return journalerr.WithPath(journalerr.KindWriteIO, f.paths.Save, err)
	}
	f.logger.Debugf(providers.TypeStorage, "Wrote %d entries to %s (encrypted=%t)", len(entries), f.paths.Save, encrypt)
	return nil
}

// LoadEntries reads the current save file, falling back to the legacy one. When neither
// exists the collection is empty.
func (f *FileManager) LoadEntries() ([]models.JournalEntry, codec.SaveFormat, error) {
	for _, path := range []string{f.paths.Save, f.paths.LegacySave} {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, codec.FormatUnknown, journalerr.WithPath(journalerr.KindReadIO, path, err)
		}
		f.logger.Infof(providers.TypeStorage, "Read save file %s (%d bytes)", path, len(data))
		return f.codec.Load(data)
	}

	f.logger.Infof(providers.TypeStorage, "No save file found, starting with an empty journal")
	return []models.JournalEntry{}, codec.FormatCurrent, nil
}

// DecryptEntries consumes the bytes carried by the encrypted-save-file signal.
func (f *FileManager) DecryptEntries(data []byte, key string) ([]models.JournalEntry, error) {
	plain, err := f.cipher.Decrypt(key, data)
	if err != nil {
		f.logger.Warnf(providers.TypeCrypto, "Decryption failed: %s", err)
		return nil, err
	}

	entries, _, err := f.codec.Load(plain)
	if err != nil {
		if _, ok := journalerr.AsEncrypted(err); ok {
			return nil, journalerr.Deserialization(errors.New("decrypted data is not a save file"), nil)
		}
		return nil, err
	}
	f.logger.Infof(providers.TypeCrypto, "Decrypted save file with %d entries", len(entries))
	return entries, nil
}

func (f *FileManager) SaveSession(session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return journalerr.New(journalerr.KindSerialization, err)
	}
	if err := writeAtomic(f.paths.Session, data); err != nil {
		return journalerr.WithPath(journalerr.KindWriteIO, f.paths.Session, err)
	}
	return nil
}

// LoadSession never fails: a missing or unreadable session yields defaults, and fields
// absent from the file keep their default values.
func (f *FileManager) LoadSession(now time.Time) *models.Session {
	session := models.DefaultSession(now)

	data, err := os.ReadFile(f.paths.Session)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.logger.Warnf(providers.TypeStorage, "Unable to read session file %s: %s", f.paths.Session, err)
		}
		return session
	}

	if err := json.Unmarshal(data, session); err != nil {
		f.logger.Warnf(providers.TypeStorage, "Session file %s is corrupt, using defaults: %s", f.paths.Session, err)
		return models.DefaultSession(now)
	}
	return session
}

func writeAtomic(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
