package codec

import (
	"bytes"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"moodchart/internal/journalerr"
	"moodchart/internal/models"
	"moodchart/internal/providers"
)

type CodecInterface interface {
	Load(data []byte) ([]models.JournalEntry, SaveFormat, error)
	Save(entries []models.JournalEntry) ([]byte, error)
}

type Codec struct {
	matchers []Matcher
	logger   providers.Logger
}

func NewCodec(logger providers.Logger) *Codec {
	return &Codec{matchers: DefaultMatchers(), logger: logger}
}

// NewCodecWithMatchers is used when a caller needs a custom format priority.
func NewCodecWithMatchers(logger providers.Logger, matchers []Matcher) *Codec {
	return &Codec{matchers: matchers, logger: logger}
}

// Load tries each matcher in order. When none matches, the result is either the
// encrypted-save-file signal carrying data, or a Deserialization error carrying the
// current and legacy parse errors.
func (c *Codec) Load(data []byte) ([]models.JournalEntry, SaveFormat, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.JournalEntry{}, FormatCurrent, nil
	}

	errs := make(map[SaveFormat]error, len(c.matchers))
	for _, m := range c.matchers {
		entries, err := m.Decode(data)
		if err == nil {
			if m.Format != FormatCurrent {
				c.logger.Warnf(providers.TypeStorage, "Found %s save format, migrated %d entries", m.Format, len(entries))
			}
			return entries, m.Format, nil
		}
		errs[m.Format] = err
		c.logger.Debugf(providers.TypeStorage, "Save data is not %s format: %s", m.Format, err)
	}

	if LooksEncrypted(data) {
		c.logger.Infof(providers.TypeStorage, "Save data did not decode and looks encrypted")
		raw := make([]byte, len(data))
		copy(raw, data)
		return nil, FormatUnknown, journalerr.EncryptedSaveFile(raw)
	}
	return nil, FormatUnknown, journalerr.Deserialization(errs[FormatCurrent], errs[FormatLegacy])
}

// Save always emits the current format. Nil slices are written as empty arrays.
func (c *Codec) Save(entries []models.JournalEntry) ([]byte, error) {
	out := make([]models.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if out[i].Moods == nil {
			out[i].Moods = []models.MoodTag{}
		}
		if out[i].Activities == nil {
			out[i].Activities = []models.Activity{}
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, journalerr.New(journalerr.KindSerialization, err)
	}
	return data, nil
}

// LooksEncrypted reports whether data is plausibly ciphertext rather than damaged text:
// invalid UTF-8 or control bytes other than whitespace.
func LooksEncrypted(data []byte) bool {
	if !utf8.Valid(data) {
		return true
	}
	for _, b := range data {
		if b < 0x20 && b != '\n' && b != '\r' && b != '\t' {
			return true
		}
	}
	return false
}
