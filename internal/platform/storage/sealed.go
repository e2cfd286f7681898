package storage

import (
	"context"
	"encoding/base64"
	"fmt"
)

type Cipher interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Sealed encrypts every value before it reaches the wrapped store. Values are
// base64 encoded so text-only backends keep them intact.
type Sealed struct {
	Store
	cipher Cipher
}

func NewSealed(store Store, cipher Cipher) *Sealed {
	return &Sealed{Store: store, cipher: cipher}
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	encoded, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	sealed, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("storage: decode sealed %s: %w", key, err)
	}
	plain, err := s.cipher.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("storage: open sealed %s: %w", key, err)
	}
	return plain, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return fmt.Errorf("storage: seal %s: %w", key, err)
	}
	return s.Store.Set(ctx, key, []byte(base64.StdEncoding.EncodeToString(sealed)))
}
