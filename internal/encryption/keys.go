package encryption

import (
	"moodchart/internal/journalerr"
)

const (
	KeySize = 32
	// keyPadding is appended to short passphrases before truncation.
	keyPadding = "00000000000000000000000000000000"

	DefaultMinKeyLength = 4
	DefaultMaxKeyLength = 32
)

// NormalizeKey pads a passphrase with '0' and truncates it to KeySize bytes.
func NormalizeKey(passphrase string) []byte {
	key := passphrase
	if len(key) < KeySize {
		key += keyPadding
	}
	return []byte(key)[:KeySize]
}

// KeyPolicy bounds the accepted passphrase length in bytes.
type KeyPolicy struct {
	MinLength int
	MaxLength int
}

func DefaultKeyPolicy() KeyPolicy {
	return KeyPolicy{MinLength: DefaultMinKeyLength, MaxLength: DefaultMaxKeyLength}
}

// ValidatePair checks a passphrase and its confirmation. Length problems are reported
// per field first; a mismatch is reported only when both fields have acceptable lengths.
func (p KeyPolicy) ValidatePair(primary, confirmation string) error {
	primaryShort := len(primary) < p.MinLength
	secondaryShort := len(confirmation) < p.MinLength
	if primaryShort || secondaryShort {
		return journalerr.KeyTooShort(primaryShort, secondaryShort)
	}

	primaryLong := len(primary) > p.MaxLength
	secondaryLong := len(confirmation) > p.MaxLength
	if primaryLong || secondaryLong {
		return journalerr.KeyTooLong(primaryLong, secondaryLong)
	}

	if primary != confirmation {
		return journalerr.ErrKeysMismatch
	}
	return nil
}
