package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealerRoundTrip(t *testing.T) {
	s, err := NewSealer(strings.Repeat("ab", 32))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte(`{"email":"john@example.com"}`))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "john@example.com")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"email":"john@example.com"}`, string(plain))
}

func TestSealerRejectsTamperedValue(t *testing.T) {
	s, err := NewSealer("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("payload"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = s.Open(sealed)
	assert.Error(t, err)

	_, err = s.Open([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNewSealerKeyLength(t *testing.T) {
	_, err := NewSealer("short")
	assert.Error(t, err)

	_, err = NewSealer(hex.EncodeToString(make([]byte, 32)))
	assert.NoError(t, err)
}

func TestNewSealerKeyForms(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	forms := map[string]string{
		"raw":        string(key),
		"hex":        hex.EncodeToString(key),
		"base64":     base64.StdEncoding.EncodeToString(key),
		"raw base64": base64.RawStdEncoding.EncodeToString(key),
	}

	reference, err := NewSealer(string(key))
	require.NoError(t, err)
	sealed, err := reference.Seal([]byte("payload"))
	require.NoError(t, err)

	for name, form := range forms {
		t.Run(name, func(t *testing.T) {
			s, err := NewSealer(form)
			require.NoError(t, err)
			plain, err := s.Open(sealed)
			require.NoError(t, err, "every form must decode to the same key")
			assert.Equal(t, "payload", string(plain))
		})
	}
}
