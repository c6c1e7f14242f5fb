package appointment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const kodeQrLength = 10

// generateKodeQr menghasilkan kandidat kode: 10 karakter hex huruf besar.
func generateKodeQr() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:kodeQrLength])
}

// uniqueKodeQr mencoba beberapa kandidat sampai menemukan kode yang belum
// dipakai janji temu mana pun. Tabrakan pada 40 bit acak praktis mustahil,
// loop ini hanya menjaga invarian keunikan.
func (s *Service) uniqueKodeQr() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := generateKodeQr()
		exists, err := s.store.QrCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique kode qr")
}
