package appointment

import (
	"fmt"
	"regexp"
	"time"

	"bukutamu/internal/apperr"
)

const tanggalLayout = "2006-01-02"

var (
	tanggalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	waktuPattern   = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ParseTanggal menerima hanya format YYYY-MM-DD.
func ParseTanggal(s string) (time.Time, error) {
	if !tanggalPattern.MatchString(s) {
		return time.Time{}, apperr.InvalidInput("tanggal harus berformat yyyy-MM-dd")
	}
	t, err := time.Parse(tanggalLayout, s)
	if err != nil {
		return time.Time{}, apperr.InvalidInput("tanggal harus berformat yyyy-MM-dd")
	}
	return t, nil
}

// ParseWaktu menerima hanya format HH:MM 24 jam dan mengembalikan bentuk
// kanonisnya.
func ParseWaktu(s string) (string, error) {
	if !waktuPattern.MatchString(s) {
		return "", apperr.InvalidInput("waktu harus berformat HH:mm")
	}
	return s, nil
}

var namaBulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatJadwal menghasilkan jadwal untuk pesan notifikasi, mis.
// "02 Juni 2025 14:00".
func FormatJadwal(tanggal time.Time, waktu string) string {
	return fmt.Sprintf("%02d %s %d %s", tanggal.Day(), namaBulan[tanggal.Month()-1], tanggal.Year(), waktu)
}

// sameDate membandingkan dua waktu hanya pada komponen kalendernya.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
