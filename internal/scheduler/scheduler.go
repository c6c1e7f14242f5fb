// Package scheduler menjalankan pekerjaan latar: pengingat janji temu untuk
// guru dan pengiriman laporan harian via email.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"bukutamu/internal/appointment"
	"bukutamu/internal/config"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

// jam pengiriman laporan harian, setelah jam sekolah berakhir
const dailyReportHour = 17

type Store interface {
	ListTodayAppointments(today time.Time) ([]database.Appointment, error)
	GetUser(id int) (*database.User, error)
}

type ReminderPusher interface {
	SendReminder(deviceToken, namaTamu, jadwal string) error
}

type Reporter interface {
	Daily(date time.Time) (*models.DailyReportResponse, error)
}

type ReportMailer interface {
	SendDailyReport(to string, report *models.DailyReportResponse) error
}

type Scheduler struct {
	cfg      *config.Config
	store    Store
	pusher   ReminderPusher
	reporter Reporter
	mailer   ReportMailer
	stopChan chan struct{}

	// dedup dalam memori; hilang saat restart dan itu bisa diterima
	remindedIDs  map[int]struct{}
	lastReported string
}

func NewScheduler(cfg *config.Config, store Store, pusher ReminderPusher, reporter Reporter, mailer ReportMailer) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		store:       store,
		pusher:      pusher,
		reporter:    reporter,
		mailer:      mailer,
		stopChan:    make(chan struct{}),
		remindedIDs: make(map[int]struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	interval := time.Duration(s.cfg.SchedulerInterval) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("⏰ Scheduler dimulai (sweep tiap %v)", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			now := time.Now()
			if s.cfg.EnableReminders {
				s.sendReminders(now)
			}
			if s.cfg.EnableDailyReportMail {
				s.sendDailyReport(now)
			}
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// sendReminders mengingatkan guru beberapa menit sebelum janji temu hari ini
// yang masih Menunggu. Pengingat tidak mengubah status janji temu.
func (s *Scheduler) sendReminders(now time.Time) {
	if s.pusher == nil {
		return
	}

	appointments, err := s.store.ListTodayAppointments(now)
	if err != nil {
		log.Printf("❌ Gagal memuat janji temu hari ini: %v", err)
		return
	}

	lead := time.Duration(s.cfg.ReminderLeadMinutes) * time.Minute

	for _, a := range appointments {
		if a.Status != database.StatusMenunggu {
			continue
		}
		if _, done := s.remindedIDs[a.ID]; done {
			continue
		}

		scheduled, err := scheduledAt(a, now.Location())
		if err != nil {
			continue
		}
		until := scheduled.Sub(now)
		if until > lead || until < 0 {
			continue
		}

		guru, err := s.store.GetUser(a.IDGuru)
		if err != nil || guru.DeviceToken == "" {
			s.remindedIDs[a.ID] = struct{}{}
			continue
		}

		jadwal := appointment.FormatJadwal(a.Tanggal, a.Waktu)
		if err := s.pusher.SendReminder(guru.DeviceToken, a.TamuNama, jadwal); err != nil {
			log.Printf("❌ Gagal mengirim pengingat janji temu %d: %v", a.ID, err)
			continue
		}

		log.Printf("⏰ Pengingat terkirim ke %s untuk janji temu %d", guru.Nama, a.ID)
		s.remindedIDs[a.ID] = struct{}{}
	}
}

// sendDailyReport mengirim rekapitulasi sekali per hari setelah jam sekolah.
func (s *Scheduler) sendDailyReport(now time.Time) {
	if s.mailer == nil || now.Hour() < dailyReportHour || s.cfg.ReportRecipient == "" {
		return
	}

	key := now.Format("2006-01-02")
	if s.lastReported == key {
		return
	}

	report, err := s.reporter.Daily(now)
	if err != nil {
		log.Printf("❌ Gagal menyusun laporan harian: %v", err)
		return
	}

	if err := s.mailer.SendDailyReport(s.cfg.ReportRecipient, report); err != nil {
		return
	}

	s.lastReported = key

	// reset dedup pengingat untuk hari berikutnya
	s.remindedIDs = make(map[int]struct{})
}

func scheduledAt(a database.Appointment, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", a.Waktu)
	if err != nil {
		return time.Time{}, fmt.Errorf("waktu janji temu %d tidak valid: %w", a.ID, err)
	}
	y, m, d := a.Tanggal.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}
