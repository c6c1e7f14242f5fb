// Package appointment berisi mesin siklus hidup janji temu: validasi,
// pembuatan, transisi status, penjadwalan ulang, dan verifikasi kode QR.
// Keputusan "transisi mana yang layak dinotifikasikan" diambil di sini;
// persistensi dan siaran diserahkan ke kolaborator.
package appointment

import (
	"errors"
	"fmt"
	"log"
	"time"

	"bukutamu/internal/apperr"
	"bukutamu/internal/database"
	"bukutamu/pkg/models"
)

// Store adalah akses baca/tulis yang dibutuhkan mesin; diimplementasikan
// oleh *database.DB.
type Store interface {
	ListAppointments(date *time.Time, status string, page, limit int) ([]database.Appointment, int, error)
	ListAppointmentsByGuru(guruID int, date *time.Time, status string) ([]database.Appointment, error)
	GetAppointment(id int) (*database.Appointment, error)
	GetAppointmentByQr(code string) (*database.Appointment, error)
	QrCodeExists(code string) (bool, error)
	InsertAppointment(a *database.Appointment) error
	UpdateAppointmentStatus(id int, status string) error
	UpdateAppointmentSchedule(id int, tanggal time.Time, waktu, reschedule string) error
	ListTodayAppointments(today time.Time) ([]database.Appointment, error)
	GetTamu(id int) (*database.Guest, error)
	GetUser(id int) (*database.User, error)
}

// Notifier menyimpan notifikasi yang tahan lama untuk satu pengguna.
type Notifier interface {
	Notify(userID int, pesan string) error
}

// Broadcaster mendorong event ke koneksi langsung; tidak pernah gagal ke
// arah pemanggil.
type Broadcaster interface {
	Broadcast(staffID int, message string)
}

type Service struct {
	store       Store
	notifier    Notifier
	broadcaster Broadcaster
	now         func() time.Time
}

func NewService(store Store, notifier Notifier, broadcaster Broadcaster) *Service {
	return &Service{
		store:       store,
		notifier:    notifier,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// List mengembalikan satu halaman janji temu (1-indexed) terurut (tanggal,
// waktu) naik, plus jumlah total.
func (s *Service) List(dateStr, status string, page, limit int) ([]models.AppointmentResponse, int, error) {
	date, err := optionalTanggal(dateStr)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	appointments, total, err := s.store.ListAppointments(date, status, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return toResponses(appointments), total, nil
}

func (s *Service) ListByGuru(guruID int, dateStr, status string) ([]models.AppointmentResponse, error) {
	date, err := optionalTanggal(dateStr)
	if err != nil {
		return nil, err
	}

	appointments, err := s.store.ListAppointmentsByGuru(guruID, date, status)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return toResponses(appointments), nil
}

// Create memvalidasi input lalu menyimpan janji temu baru berstatus Menunggu
// dengan kode QR unik. Guru tujuan wajib ada dan memegang role Guru; itu
// aturan bisnis, bukan sekadar foreign key.
func (s *Service) Create(guestID int, tanggalStr, waktuStr, keperluan string, guruID int) (*models.AppointmentResponse, error) {
	tanggal, err := ParseTanggal(tanggalStr)
	if err != nil {
		return nil, err
	}
	waktu, err := ParseWaktu(waktuStr)
	if err != nil {
		return nil, err
	}
	if keperluan == "" {
		return nil, apperr.InvalidInput("keperluan wajib diisi")
	}
	if len(keperluan) > 255 {
		return nil, apperr.InvalidInput("keperluan maksimal 255 karakter")
	}

	tamu, err := s.store.GetTamu(guestID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.InvalidInput("tamu dengan ID %d tidak ditemukan", guestID)
		}
		return nil, apperr.Internal(err)
	}

	guru, err := s.store.GetUser(guruID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.InvalidInput("guru dengan ID %d tidak ditemukan", guruID)
		}
		return nil, apperr.Internal(err)
	}
	if guru.Role != database.RoleGuru {
		return nil, apperr.InvalidInput("pengguna %d bukan guru", guruID)
	}

	kodeQr, err := s.uniqueKodeQr()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	appointment := &database.Appointment{
		IDTamu:      guestID,
		IDGuru:      guruID,
		Tanggal:     tanggal,
		Waktu:       waktu,
		Keperluan:   keperluan,
		Status:      database.StatusMenunggu,
		KodeQr:      kodeQr,
		TamuNama:    tamu.Nama,
		TamuTelepon: tamu.Telepon,
		GuruNama:    guru.Nama,
	}
	if err := s.store.InsertAppointment(appointment); err != nil {
		return nil, apperr.Internal(err)
	}

	log.Printf("📅 Janji temu #%d dibuat: %s → %s (%s)", appointment.ID, tamu.Nama, guru.Nama, FormatJadwal(tanggal, waktu))
	return toResponse(appointment), nil
}

// UpdateStatus mengganti status janji temu. Hanya transisi
// Menunggu → {Selesai, Telat} yang memicu notifikasi: itulah satu-satunya
// edge yang berarti "tamu sudah datang" bagi guru. Pengulangan status yang
// sama atau transisi lain berlalu tanpa notifikasi.
func (s *Service) UpdateStatus(id int, status string) (*models.AppointmentResponse, error) {
	if !database.IsValidStatus(status) {
		return nil, apperr.InvalidInput("status harus salah satu dari: %s, %s, %s",
			database.StatusMenunggu, database.StatusSelesai, database.StatusTelat)
	}

	appointment, err := s.store.GetAppointment(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("janji temu tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}

	previous := appointment.Status
	if err := s.store.UpdateAppointmentStatus(id, status); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("janji temu tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}
	appointment.Status = status

	if previous == database.StatusMenunggu &&
		(status == database.StatusSelesai || status == database.StatusTelat) {
		pesan := fmt.Sprintf(
			"Janji temu dengan %s (%s) telah sampai di lobby sekolah, segera temui!",
			appointment.TamuNama, FormatJadwal(appointment.Tanggal, appointment.Waktu),
		)
		if err := s.notifyAndBroadcast(appointment.IDGuru, pesan); err != nil {
			return nil, err
		}
	}

	return toResponse(appointment), nil
}

// Reschedule menimpa tanggal/waktu dan menyetel penanda reschedule ke
// Tunggu. Jika penandanya Batal (dibatalkan oleh aksi administratif),
// notifikasi "dijadwalkan ulang setelah pembatalan" yang merujuk jadwal lama
// dikirim lebih dulu. Keduanya mengikuti pola simpan-lalu-siarkan.
func (s *Service) Reschedule(id int, tanggalStr, waktuStr string) (*models.AppointmentResponse, error) {
	tanggal, err := ParseTanggal(tanggalStr)
	if err != nil {
		return nil, err
	}
	waktu, err := ParseWaktu(waktuStr)
	if err != nil {
		return nil, err
	}

	appointment, err := s.store.GetAppointment(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("janji temu tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}

	if appointment.Reschedule == database.RescheduleBatal {
		pesan := fmt.Sprintf(
			"Janji temu dengan %s pada %s yang dibatalkan akan dijadwalkan ulang.",
			appointment.TamuNama, FormatJadwal(appointment.Tanggal, appointment.Waktu),
		)
		if err := s.notifyAndBroadcast(appointment.IDGuru, pesan); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateAppointmentSchedule(id, tanggal, waktu, database.RescheduleTunggu); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("janji temu tidak ditemukan")
		}
		return nil, apperr.Internal(err)
	}
	appointment.Tanggal = tanggal
	appointment.Waktu = waktu
	appointment.Reschedule = database.RescheduleTunggu

	pesan := fmt.Sprintf(
		"Janji temu dengan %s telah dijadwalkan ulang ke %s.",
		appointment.TamuNama, FormatJadwal(tanggal, waktu),
	)
	if err := s.notifyAndBroadcast(appointment.IDGuru, pesan); err != nil {
		return nil, err
	}

	log.Printf("🔁 Janji temu #%d dijadwalkan ulang ke %s", id, FormatJadwal(tanggal, waktu))
	return toResponse(appointment), nil
}

// VerifyQrCode adalah jalur check-in fisik: kode harus dikenal, jadwalnya
// hari ini, dan statusnya masih Menunggu.
func (s *Service) VerifyQrCode(code string) (*models.AppointmentResponse, error) {
	appointment, err := s.store.GetAppointmentByQr(code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("kode QR tidak valid")
		}
		return nil, apperr.Internal(err)
	}

	if !sameDate(appointment.Tanggal, s.now()) {
		return nil, apperr.Conflict("janji temu tidak untuk hari ini")
	}
	if appointment.Status != database.StatusMenunggu {
		return nil, apperr.Conflict("janji temu sudah dalam status %s", appointment.Status)
	}

	return toResponse(appointment), nil
}

// CheckByQrCode adalah varian baca-saja untuk tampilan informasi: hanya
// gagal kalau kodenya tidak dikenal, tanpa syarat tanggal/status.
func (s *Service) CheckByQrCode(code string) (*models.AppointmentResponse, error) {
	appointment, err := s.store.GetAppointmentByQr(code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("kode QR tidak valid")
		}
		return nil, apperr.Internal(err)
	}
	return toResponse(appointment), nil
}

// Today mengembalikan janji temu tanggal hari ini terurut waktu naik.
func (s *Service) Today() ([]models.AppointmentResponse, error) {
	appointments, err := s.store.ListTodayAppointments(s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return toResponses(appointments), nil
}

// notifyAndBroadcast: baris notifikasi disimpan lebih dulu, baru siaran
// dicoba. Gagal simpan menggagalkan operasi; siaran tidak pernah.
func (s *Service) notifyAndBroadcast(guruID int, pesan string) error {
	if err := s.notifier.Notify(guruID, pesan); err != nil {
		return apperr.Internal(err)
	}
	s.broadcaster.Broadcast(guruID, pesan)
	return nil
}

func optionalTanggal(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	t, err := ParseTanggal(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toResponse(a *database.Appointment) *models.AppointmentResponse {
	return &models.AppointmentResponse{
		IDJanjiTemu: a.ID,
		Tanggal:     a.Tanggal.Format(tanggalLayout),
		Waktu:       a.Waktu,
		Status:      a.Status,
		Keperluan:   a.Keperluan,
		KodeQr:      a.KodeQr,
		Reschedule:  a.Reschedule,
		Tamu: &models.TamuResponse{
			IDTamu:  a.IDTamu,
			Nama:    a.TamuNama,
			Telepon: a.TamuTelepon,
		},
		Guru: &models.UserResponse{
			IDPengguna: a.IDGuru,
			Nama:       a.GuruNama,
		},
	}
}

func toResponses(appointments []database.Appointment) []models.AppointmentResponse {
	responses := make([]models.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *toResponse(&appointments[i]))
	}
	return responses
}
