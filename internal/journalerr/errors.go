package journalerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindSerialization Kind = iota
	KindDeserialization
	KindReadIO
	KindWriteIO
	KindBackupIO
	KindExportIO
	KindEncryption
	KindDecryption
	// KindEncryptedSaveFile is a signal, not a failure: the save file did not decode and
	// looks like ciphertext. It carries the raw bytes for a later decrypt attempt.
	KindEncryptedSaveFile
	KindKeysMismatch
	KindKeyTooShort
	KindKeyTooLong
	KindUpdateList
)

var kindNames = map[Kind]string{
	KindSerialization:     "Serialization",
	KindDeserialization:   "Deserialization",
	KindReadIO:            "ReadSaveFileIO",
	KindWriteIO:           "WriteSaveFileIO",
	KindBackupIO:          "SaveBackupIO",
	KindExportIO:          "ExportIO",
	KindEncryption:        "EncryptionError",
	KindDecryption:        "DecryptionError",
	KindEncryptedSaveFile: "EncryptedSaveFile",
	KindKeysMismatch:      "EncryptionKeysDontMatch",
	KindKeyTooShort:       "EncryptKeyTooShort",
	KindKeyTooLong:        "EncryptKeyTooLong",
	KindUpdateList:        "UpdateReleaseList",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error value type of the persisted-state core.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind Kind
	Path string
	Err  error

	// LegacyErr is the legacy-format parse error for KindDeserialization.
	LegacyErr error
	// Data is the undecoded save file for KindEncryptedSaveFile.
	Data []byte
	// Primary and Secondary flag which passphrase field is at fault for key length kinds.
	Primary   bool
	Secondary bool
}

func (e *Error) Error() string {
	msg := "journal: " + e.Kind.String()
	switch e.Kind {
	case KindDeserialization:
		return fmt.Sprintf("%s current=%v legacy=%v", msg, e.Err, e.LegacyErr)
	case KindKeyTooShort, KindKeyTooLong:
		return fmt.Sprintf("%s primary=%t secondary=%t", msg, e.Primary, e.Secondary)
	}
	if e.Err != nil {
		msg += " " + e.Err.Error()
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so sentinel values like ErrKeysMismatch work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Path == ""
}

var (
	ErrKeysMismatch = &Error{Kind: KindKeysMismatch}
	ErrDecryption   = &Error{Kind: KindDecryption}
)

func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func WithPath(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func Deserialization(currentErr, legacyErr error) *Error {
	return &Error{Kind: KindDeserialization, Err: currentErr, LegacyErr: legacyErr}
}

func EncryptedSaveFile(data []byte) *Error {
	return &Error{Kind: KindEncryptedSaveFile, Data: data}
}

func KeyTooShort(primary, secondary bool) *Error {
	return &Error{Kind: KindKeyTooShort, Primary: primary, Secondary: secondary}
}

func KeyTooLong(primary, secondary bool) *Error {
	return &Error{Kind: KindKeyTooLong, Primary: primary, Secondary: secondary}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var je *Error
	if errors.As(err, &je) {
		return je.Kind, true
	}
	return 0, false
}

// AsEncrypted returns the raw save bytes when err is the encrypted-save-file signal.
func AsEncrypted(err error) ([]byte, bool) {
	var je *Error
	if errors.As(err, &je) && je.Kind == KindEncryptedSaveFile {
		return je.Data, true
	}
	return nil, false
}
