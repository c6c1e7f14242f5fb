package appointment

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kodeQrFormat = regexp.MustCompile(`^[0-9A-F]{10}$`)

func TestGenerateKodeQrFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateKodeQr()
		assert.True(t, kodeQrFormat.MatchString(code), "kode tidak sesuai format: %q", code)
	}
}

func TestGenerateKodeQrUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := generateKodeQr()
		_, dup := seen[code]
		require.False(t, dup, "kode duplikat pada iterasi %d: %s", i, code)
		seen[code] = struct{}{}
	}
}

func TestUniqueKodeQrSkipsTakenCodes(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &recorder{}, &recorder{})

	code, err := svc.uniqueKodeQr()
	require.NoError(t, err)
	assert.True(t, kodeQrFormat.MatchString(code))
}
