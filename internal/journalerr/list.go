package journalerr

import "errors"

type Remediation int

const (
	RemediationNone Remediation = iota
	RemediationResetBackupPath
	RemediationIgnoreHenceforth
	RemediationReenterKeys
)

func (k Kind) Explanation() string {
	switch k {
	case KindSerialization:
		return "The journal could not be converted for saving. This usually means an entry holds invalid data."
	case KindDeserialization:
		return "The save file could not be read in any known format. It may be corrupt."
	case KindReadIO:
		return "The save file could not be read from disk."
	case KindWriteIO:
		return "The save file could not be written to disk. Check permissions and free space."
	case KindBackupIO:
		return "The backup archive could not be written. The backup folder may be missing or read-only."
	case KindExportIO:
		return "The export file could not be written."
	case KindEncryption:
		return "The save file could not be encrypted."
	case KindDecryption:
		return "The save file could not be decrypted. The password is probably wrong."
	case KindEncryptedSaveFile:
		return "The save file is encrypted."
	case KindKeysMismatch:
		return "The encryption password and its confirmation do not match."
	case KindKeyTooShort:
		return "The encryption password is too short."
	case KindKeyTooLong:
		return "The encryption password is too long."
	case KindUpdateList:
		return "The list of releases could not be fetched. You may be offline."
	}
	return "Unknown error."
}

func (k Kind) Remediation() Remediation {
	switch k {
	case KindBackupIO:
		return RemediationResetBackupPath
	case KindUpdateList:
		return RemediationIgnoreHenceforth
	case KindKeysMismatch, KindKeyTooShort, KindKeyTooLong, KindDecryption:
		return RemediationReenterKeys
	}
	return RemediationNone
}

// List accumulates recoverable errors for presentation. It is not safe for concurrent use.
type List struct {
	items   []*Error
	ignored map[Kind]struct{}
}

func NewList() *List {
	return &List{ignored: make(map[Kind]struct{})}
}

// Push records err and reports whether it entered the list. Nil errors, ignored kinds and
// the encrypted-save-file signal never do. Errors outside the taxonomy are recorded as KindReadIO.
func (l *List) Push(err error) bool {
	if err == nil {
		return false
	}
	var je *Error
	if !errors.As(err, &je) {
		je = &Error{Kind: KindReadIO, Err: err}
	}
	if je.Kind == KindEncryptedSaveFile {
		return false
	}
	if _, skip := l.ignored[je.Kind]; skip {
		return false
	}
	l.items = append(l.items, je)
	return true
}

// Ignore drops every present error of kind and rejects future ones.
func (l *List) Ignore(kind Kind) {
	l.ignored[kind] = struct{}{}
	kept := l.items[:0]
	for _, e := range l.items {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	l.items = kept
}

func (l *List) Items() []*Error {
	return append([]*Error(nil), l.items...)
}

func (l *List) Len() int {
	return len(l.items)
}

// Dismiss removes the error at index i.
func (l *List) Dismiss(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
}

func (l *List) Clear() {
	l.items = nil
}
