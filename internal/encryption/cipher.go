package encryption

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"moodchart/internal/journalerr"
	"moodchart/internal/structures"
)

type NonceMode string

const (
	// NonceRandom draws a fresh nonce per encryption and stores it after Magic.
	NonceRandom NonceMode = "random"
	// NonceFixed uses an all-zero nonce and writes bare ciphertext. Reusing a nonce under the
	// same key leaks plaintext relationships between saves; it exists for files written that way.
	NonceFixed NonceMode = "fixed"
)

// Magic prefixes ciphertext written in NonceRandom mode. The first byte is not valid UTF-8,
// so the codec never mistakes the file for text.
var Magic = []byte{0x89, 'M', 'C', 'E', 0x01}

type CipherInterface interface {
	Encrypt(key string, plain []byte) ([]byte, error)
	Decrypt(key string, data []byte) ([]byte, error)
}

type Cipher struct {
	mode NonceMode
	rand io.Reader
}

func NewCipher(mode NonceMode) *Cipher {
	if mode != NonceFixed {
		mode = NonceRandom
	}
	return &Cipher{mode: mode, rand: rand.Reader}
}

func NewCipherFromConfig(conf *structures.Config) *Cipher {
	return NewCipher(NonceMode(conf.Encryption.NonceMode))
}

func (c *Cipher) Mode() NonceMode {
	return c.mode
}

func aead(key string) (cipher.AEAD, error) {
	return chacha20poly1305.New(NormalizeKey(key))
}

func (c *Cipher) Encrypt(key string, plain []byte) ([]byte, error) {
	a, err := aead(key)
	if err != nil {
		return nil, journalerr.New(journalerr.KindEncryption, err)
	}

	nonce := make([]byte, a.NonceSize())
	if c.mode == NonceFixed {
		return a.Seal(nil, nonce, plain, nil), nil
	}

	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, journalerr.New(journalerr.KindEncryption, fmt.Errorf("nonce: %w", err))
	}
	out := make([]byte, 0, len(Magic)+len(nonce)+len(plain)+a.Overhead())
	out = append(out, Magic...)
	out = append(out, nonce...)
	return a.Seal(out, nonce, plain, nil), nil
}

// Decrypt accepts both layouts regardless of the configured mode. Any authentication
// failure, including a wrong key or input that was never ciphertext, is KindDecryption.
func (c *Cipher) Decrypt(key string, data []byte) ([]byte, error) {
	a, err := aead(key)
	if err != nil {
		return nil, journalerr.New(journalerr.KindDecryption, err)
	}

	if bytes.HasPrefix(data, Magic) && len(data) >= len(Magic)+a.NonceSize()+a.Overhead() {
		nonce := data[len(Magic) : len(Magic)+a.NonceSize()]
		plain, err := a.Open(nil, nonce, data[len(Magic)+a.NonceSize():], nil)
		if err == nil {
			return plain, nil
		}
	}

	if len(data) < a.Overhead() {
		return nil, journalerr.New(journalerr.KindDecryption, fmt.Errorf("ciphertext too short: %d bytes", len(data)))
	}
	plain, err := a.Open(nil, make([]byte, a.NonceSize()), data, nil)
	if err != nil {
		return nil, journalerr.New(journalerr.KindDecryption, err)
	}
	return plain, nil
}
