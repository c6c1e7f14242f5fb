package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bukutamu/internal/apperr"
)

func TestParseTanggal(t *testing.T) {
	parsed, err := ParseTanggal("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), parsed)

	for _, invalid := range []string{"", "02-06-2025", "2025/06/02", "2025-13-01", "2025-06-2", "besok"} {
		_, err := ParseTanggal(invalid)
		assert.True(t, apperr.IsInvalidInput(err), "harus ditolak: %q", invalid)
	}
}

func TestParseWaktu(t *testing.T) {
	waktu, err := ParseWaktu("14:00")
	require.NoError(t, err)
	assert.Equal(t, "14:00", waktu)

	waktu, err = ParseWaktu("00:00")
	require.NoError(t, err)
	assert.Equal(t, "00:00", waktu)

	waktu, err = ParseWaktu("23:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", waktu)

	for _, invalid := range []string{"", "24:00", "14:60", "9:00", "14.00", "14:00:00"} {
		_, err := ParseWaktu(invalid)
		assert.True(t, apperr.IsInvalidInput(err), "harus ditolak: %q", invalid)
	}
}

func TestFormatJadwal(t *testing.T) {
	cases := []struct {
		tanggal  time.Time
		waktu    string
		expected string
	}{
		{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "14:00", "02 Juni 2025 14:00"},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "08:30", "15 Januari 2025 08:30"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "23:59", "31 Desember 2024 23:59"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, FormatJadwal(tc.tanggal, tc.waktu))
	}
}
