// Package crypto seals values at rest with AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const keySize = 32

var ErrCiphertextTooShort = errors.New("crypto: ciphertext too short")

// Sealer encrypts with a fixed 32 byte key. The nonce is prepended to every
// sealed value.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer accepts the key as 64 hex characters, standard base64 or 32 raw
// bytes.
func NewSealer(key string) (*Sealer, error) {
	decoded := decodeKey(key)
	if len(decoded) != keySize {
		return nil, fmt.Errorf("encryption key must be 32 bytes after decoding, got %d", len(decoded))
	}
	block, err := aes.NewCipher(decoded)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	size := s.aead.NonceSize()
	if len(sealed) < size {
		return nil, ErrCiphertextTooShort
	}
	return s.aead.Open(nil, sealed[:size], sealed[size:], nil)
}

// decodeKey tries hex, then base64, then the raw string. An encoding only
// wins when it yields exactly a 32 byte key, so a 32 character raw key that
// happens to be valid base64 is still taken as raw bytes.
func decodeKey(raw string) []byte {
	decoders := []func(string) ([]byte, error){
		hex.DecodeString,
		base64.StdEncoding.DecodeString,
		base64.RawStdEncoding.DecodeString,
	}
	for _, decode := range decoders {
		if decoded, err := decode(raw); err == nil && len(decoded) == keySize {
			return decoded
		}
	}
	return []byte(raw)
}
