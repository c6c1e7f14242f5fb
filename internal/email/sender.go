package email

import (
	"fmt"
	"log"

	"bukutamu/pkg/models"
)

// SendDailyReport mengirim rekapitulasi kunjungan satu hari ke kepala sekolah
// atau alamat lain yang dikonfigurasi.
func (s *EmailService) SendDailyReport(to string, report *models.DailyReportResponse) error {
	subject := fmt.Sprintf("📋 Laporan Kunjungan Harian - %s", report.Date)
	htmlBody := DailyReportTemplate(report)

	if err := s.SendEmail(to, subject, htmlBody); err != nil {
		log.Printf("❌ Gagal mengirim laporan harian: %v", err)
		return err
	}

	log.Printf("📧 Laporan harian terkirim ke: %s", to)
	return nil
}
