package email

import (
	"fmt"
	"strings"

	"bukutamu/pkg/models"
)

// DailyReportTemplate menghasilkan HTML laporan kunjungan satu hari.
func DailyReportTemplate(report *models.DailyReportResponse) string {
	var rows strings.Builder
	for _, stat := range report.ByTeacher {
		rows.WriteString(fmt.Sprintf(`
            <tr>
                <td>%s</td>
                <td>%d</td>
                <td>%d</td>
            </tr>`, stat.Nama, stat.Total, stat.Completed))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .header { background-color: #1A73E8; color: white; padding: 20px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .summary-box { background-color: #E8F0FE; border-left: 4px solid #1A73E8; padding: 15px; margin: 20px 0; }
        table { width: 100%%; border-collapse: collapse; margin-top: 15px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f8f9fa; }
        .footer { background-color: #f8f9fa; padding: 15px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>📋 Laporan Kunjungan Harian</h1>
        </div>
        <div class="content">
            <p>Rekapitulasi kunjungan tanggal <strong>%s</strong>:</p>

            <div class="summary-box">
                <p><strong>Total janji temu:</strong> %d</p>
                <p><strong>Selesai:</strong> %d &nbsp;|&nbsp; <strong>Menunggu:</strong> %d &nbsp;|&nbsp; <strong>Telat:</strong> %d</p>
                <p><strong>Tingkat penyelesaian:</strong> %.1f%%</p>
            </div>

            <table>
                <tr>
                    <th>Guru</th>
                    <th>Total</th>
                    <th>Selesai</th>
                </tr>%s
            </table>
        </div>
        <div class="footer">
            <p>Email otomatis dari sistem Buku Tamu Sekolah</p>
            <p>Jangan balas email ini</p>
        </div>
    </div>
</body>
</html>
    `, report.Date, report.TotalAppointments, report.Completed, report.Waiting, report.Late,
		report.CompletionRate, rows.String())
}
