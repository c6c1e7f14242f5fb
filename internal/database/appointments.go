package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const appointmentColumns = `
	j.id_janji_temu, j.id_tamu, j.id_guru, j.tanggal, j.waktu,
	j.keperluan, j.status, j.kode_qr, COALESCE(j.reschedule_status, ''),
	t.nama, t.telepon, p.nama
`

const appointmentJoins = `
	FROM janji_temu j
	JOIN tamu t ON t.id_tamu = j.id_tamu
	JOIN pengguna p ON p.id_pengguna = j.id_guru
`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*Appointment, error) {
	var a Appointment
	var waktu string
	err := row.Scan(
		&a.ID, &a.IDTamu, &a.IDGuru, &a.Tanggal, &waktu,
		&a.Keperluan, &a.Status, &a.KodeQr, &a.Reschedule,
		&a.TamuNama, &a.TamuTelepon, &a.GuruNama,
	)
	if err != nil {
		return nil, err
	}
	a.Waktu = normalizeWaktu(waktu)
	return &a, nil
}

// normalizeWaktu memotong kolom TIME ("14:00:00") menjadi "14:00".
func normalizeWaktu(waktu string) string {
	if len(waktu) > 5 {
		return waktu[:5]
	}
	return waktu
}

// ListAppointments mengembalikan satu halaman janji temu terurut (tanggal,
// waktu) naik beserta jumlah total yang cocok dengan filter.
func (db *DB) ListAppointments(date *time.Time, status string, page, limit int) ([]Appointment, int, error) {
	where, args := appointmentFilter(date, status)

	var total int
	countQuery := "SELECT COUNT(*) FROM janji_temu j" + where
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count janji_temu: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY j.tanggal ASC, j.waktu ASC LIMIT $%d OFFSET $%d",
		appointmentColumns, appointmentJoins, where, len(args)-1, len(args),
	)

	appointments, err := db.queryAppointments(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// ListAppointmentsByGuru: sama seperti ListAppointments tetapi terbatas pada
// satu guru dan tanpa paginasi.
func (db *DB) ListAppointmentsByGuru(guruID int, date *time.Time, status string) ([]Appointment, error) {
	where, args := appointmentFilter(date, status)
	if where == "" {
		where = " WHERE "
	} else {
		where += " AND "
	}
	args = append(args, guruID)
	where += fmt.Sprintf("j.id_guru = $%d", len(args))

	query := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY j.tanggal ASC, j.waktu ASC",
		appointmentColumns, appointmentJoins, where,
	)
	return db.queryAppointments(query, args...)
}

func appointmentFilter(date *time.Time, status string) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if date != nil {
		args = append(args, *date)
		clauses = append(clauses, fmt.Sprintf("j.tanggal = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("j.status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (db *DB) queryAppointments(query string, args ...interface{}) ([]Appointment, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query janji_temu: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan janji_temu: %w", err)
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

func (db *DB) GetAppointment(id int) (*Appointment, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE j.id_janji_temu = $1", appointmentColumns, appointmentJoins)

	a, err := scanAppointment(db.conn.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("janji temu %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query janji_temu: %w", err)
	}
	return a, nil
}

func (db *DB) GetAppointmentByQr(code string) (*Appointment, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE j.kode_qr = $1", appointmentColumns, appointmentJoins)

	a, err := scanAppointment(db.conn.QueryRow(query, code))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("kode qr: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query janji_temu by kode_qr: %w", err)
	}
	return a, nil
}

func (db *DB) QrCodeExists(code string) (bool, error) {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM janji_temu WHERE kode_qr = $1)", code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check kode_qr: %w", err)
	}
	return exists, nil
}

// InsertAppointment menyimpan janji temu baru dan mengisi ID yang dihasilkan.
func (db *DB) InsertAppointment(a *Appointment) error {
	query := `
		INSERT INTO janji_temu (id_tamu, id_guru, tanggal, waktu, keperluan, status, kode_qr)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_janji_temu
	`

	err := db.conn.QueryRow(query, a.IDTamu, a.IDGuru, a.Tanggal, a.Waktu, a.Keperluan, a.Status, a.KodeQr).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to insert janji_temu: %w", err)
	}
	return nil
}

func (db *DB) UpdateAppointmentStatus(id int, status string) error {
	result, err := db.conn.Exec("UPDATE janji_temu SET status = $1 WHERE id_janji_temu = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("janji temu %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateAppointmentSchedule menimpa tanggal/waktu dan penanda reschedule.
func (db *DB) UpdateAppointmentSchedule(id int, tanggal time.Time, waktu, reschedule string) error {
	query := `
		UPDATE janji_temu
		SET tanggal = $1, waktu = $2, reschedule_status = $3
		WHERE id_janji_temu = $4
	`

	result, err := db.conn.Exec(query, tanggal, waktu, reschedule, id)
	if err != nil {
		return fmt.Errorf("failed to reschedule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("janji temu %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListTodayAppointments mengembalikan janji temu pada tanggal tertentu,
// terurut waktu naik.
func (db *DB) ListTodayAppointments(today time.Time) ([]Appointment, error) {
	query := fmt.Sprintf(
		"SELECT %s %s WHERE j.tanggal = $1 ORDER BY j.waktu ASC",
		appointmentColumns, appointmentJoins,
	)
	return db.queryAppointments(query, today)
}

// ListAppointmentsBetween dipakai oleh laporan: semua janji temu dalam
// rentang [start, end).
func (db *DB) ListAppointmentsBetween(start, end time.Time) ([]Appointment, error) {
	query := fmt.Sprintf(
		"SELECT %s %s WHERE j.tanggal >= $1 AND j.tanggal < $2 ORDER BY j.tanggal ASC, j.waktu ASC",
		appointmentColumns, appointmentJoins,
	)
	return db.queryAppointments(query, start, end)
}
