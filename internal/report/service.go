// Package report menghitung rekapitulasi kunjungan harian, mingguan, dan
// bulanan dari data janji temu.
package report

import (
	"sort"
	"time"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

type Store interface {
	ListAppointmentsBetween(start, end time.Time) ([]database.Appointment, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

const dateLayout = "2006-01-02"

// Daily merangkum satu hari kalender, dipecah per guru.
func (s *Service) Daily(date time.Time) (*models.DailyReportResponse, error) {
	start := truncateDay(date)
	appointments, err := s.store.ListAppointmentsBetween(start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	report := &models.DailyReportResponse{
		Date:      start.Format(dateLayout),
		ByTeacher: []models.TeacherStat{},
	}

	byTeacher := make(map[int]*models.TeacherStat)
	for _, a := range appointments {
		report.TotalAppointments++
		switch a.Status {
		case database.StatusSelesai:
			report.Completed++
		case database.StatusMenunggu:
			report.Waiting++
		case database.StatusTelat:
			report.Late++
		}

		stat, ok := byTeacher[a.IDGuru]
		if !ok {
			stat = &models.TeacherStat{IDGuru: a.IDGuru, Nama: a.GuruNama}
			byTeacher[a.IDGuru] = stat
		}
		stat.Total++
		if a.Status == database.StatusSelesai {
			stat.Completed++
		}
	}

	for _, stat := range byTeacher {
		report.ByTeacher = append(report.ByTeacher, *stat)
	}
	sort.Slice(report.ByTeacher, func(i, j int) bool {
		return report.ByTeacher[i].IDGuru < report.ByTeacher[j].IDGuru
	})

	report.CompletionRate = rate(report.Completed, report.TotalAppointments)
	return report, nil
}

// Weekly merangkum satu minggu ISO, dipecah per hari.
func (s *Service) Weekly(year, week int) (*models.WeeklyReportResponse, error) {
	if week < 1 || week > 53 {
		return nil, apperr.InvalidInput("nomor minggu tidak valid: %d", week)
	}

	start := isoWeekStart(year, week)
	end := start.AddDate(0, 0, 7)

	appointments, err := s.store.ListAppointmentsBetween(start, end)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	report := &models.WeeklyReportResponse{
		WeekNumber: week,
		Year:       year,
		DailyStats: make([]models.DailyStat, 0, 7),
	}

	completed := 0
	byDay := make(map[string]*models.DailyStat)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		stat := &models.DailyStat{Date: key}
		byDay[key] = stat
	}

	for _, a := range appointments {
		report.TotalAppointments++
		if a.Status == database.StatusSelesai {
			completed++
		}
		if stat, ok := byDay[a.Tanggal.Format(dateLayout)]; ok {
			stat.Total++
			if a.Status == database.StatusSelesai {
				stat.Completed++
			}
		}
	}

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		report.DailyStats = append(report.DailyStats, *byDay[day.Format(dateLayout)])
	}

	report.CompletionRate = rate(completed, report.TotalAppointments)
	return report, nil
}

// Monthly merangkum satu bulan kalender, dipecah per minggu ISO.
func (s *Service) Monthly(year, month int) (*models.MonthlyReportResponse, error) {
	if month < 1 || month > 12 {
		return nil, apperr.InvalidInput("bulan tidak valid: %d", month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	appointments, err := s.store.ListAppointmentsBetween(start, end)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	report := &models.MonthlyReportResponse{
		Month:       month,
		Year:        year,
		WeeklyStats: []models.WeeklyStat{},
	}

	completed := 0
	byWeek := make(map[int]*models.WeeklyStat)
	for _, a := range appointments {
		report.TotalAppointments++
		if a.Status == database.StatusSelesai {
			completed++
		}

		_, week := a.Tanggal.ISOWeek()
		stat, ok := byWeek[week]
		if !ok {
			stat = &models.WeeklyStat{WeekNumber: week}
			byWeek[week] = stat
		}
		stat.Total++
		if a.Status == database.StatusSelesai {
			stat.Completed++
		}
	}

	for _, stat := range byWeek {
		report.WeeklyStats = append(report.WeeklyStats, *stat)
	}
	sort.Slice(report.WeeklyStats, func(i, j int) bool {
		return report.WeeklyStats[i].WeekNumber < report.WeeklyStats[j].WeekNumber
	})

	report.CompletionRate = rate(completed, report.TotalAppointments)
	return report, nil
}

func rate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isoWeekStart mencari hari Senin dari minggu ISO yang diminta.
func isoWeekStart(year, week int) time.Time {
	t := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC)
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	return t.AddDate(0, 0, (week-1)*7)
}
