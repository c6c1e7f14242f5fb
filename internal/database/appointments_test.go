package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *DB) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	return conn, mock, NewDBFromConn(conn)
}

var appointmentRowColumns = []string{
	"id_janji_temu", "id_tamu", "id_guru", "tanggal", "waktu",
	"keperluan", "status", "kode_qr", "reschedule_status",
	"tamu_nama", "tamu_telepon", "guru_nama",
}

func TestGetAppointment(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	tanggal := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(appointmentRowColumns).
		AddRow(1, 2, 7, tanggal, "14:00:00", "Konsultasi rapor", StatusMenunggu, "A1B2C3D4E5", "", "Budi Santoso", "08123456789", "Ibu Sari")

	mock.ExpectQuery(`SELECT`).
		WithArgs(1).
		WillReturnRows(rows)

	a, err := db.GetAppointment(1)
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, StatusMenunggu, a.Status)
	assert.Equal(t, "Budi Santoso", a.TamuNama)
	assert.Equal(t, "Ibu Sari", a.GuruNama)

	// kolom TIME dipangkas ke HH:MM
	assert.Equal(t, "14:00", a.Waktu)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointmentNotFound(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := db.GetAppointment(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointmentByQr(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	tanggal := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(appointmentRowColumns).
		AddRow(3, 2, 7, tanggal, "09:30:00", "Pengambilan ijazah", StatusMenunggu, "F00DBEEF01", "Tunggu", "Siti Aminah", "08987654321", "Pak Joko")

	mock.ExpectQuery(`SELECT`).
		WithArgs("F00DBEEF01").
		WillReturnRows(rows)

	a, err := db.GetAppointmentByQr("F00DBEEF01")
	require.NoError(t, err)
	assert.Equal(t, 3, a.ID)
	assert.Equal(t, "F00DBEEF01", a.KodeQr)
	assert.Equal(t, RescheduleTunggu, a.Reschedule)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppointments(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	tanggal := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(StatusMenunggu).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(appointmentRowColumns).
		AddRow(1, 2, 7, tanggal, "08:00:00", "Konsultasi", StatusMenunggu, "AAAA000001", "", "Budi", "0811", "Ibu Sari").
		AddRow(2, 3, 7, tanggal, "09:00:00", "Rapat komite", StatusMenunggu, "AAAA000002", "", "Siti", "0812", "Ibu Sari")

	mock.ExpectQuery(`SELECT`).
		WithArgs(StatusMenunggu, 10, 0).
		WillReturnRows(rows)

	appointments, total, err := db.ListAppointments(nil, StatusMenunggu, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, appointments, 2)
	assert.Equal(t, "08:00", appointments[0].Waktu)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppointmentsPaginationOffset(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	mock.ExpectQuery(`SELECT`).
		WithArgs(25, 25).
		WillReturnRows(sqlmock.NewRows(appointmentRowColumns))

	appointments, total, err := db.ListAppointments(nil, "", 2, 25)
	require.NoError(t, err)
	assert.Equal(t, 30, total)
	assert.Len(t, appointments, 0)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAppointment(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	tanggal := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	a := &Appointment{
		IDTamu:    2,
		IDGuru:    7,
		Tanggal:   tanggal,
		Waktu:     "14:00",
		Keperluan: "Konsultasi rapor",
		Status:    StatusMenunggu,
		KodeQr:    "A1B2C3D4E5",
	}

	mock.ExpectQuery(`INSERT INTO janji_temu`).
		WithArgs(2, 7, tanggal, "14:00", "Konsultasi rapor", StatusMenunggu, "A1B2C3D4E5").
		WillReturnRows(sqlmock.NewRows([]string{"id_janji_temu"}).AddRow(42))

	require.NoError(t, db.InsertAppointment(a))
	assert.Equal(t, 42, a.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointmentStatus(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	mock.ExpectExec(`UPDATE janji_temu SET status`).
		WithArgs(StatusSelesai, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.UpdateAppointmentStatus(1, StatusSelesai))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointmentStatusNotFound(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	mock.ExpectExec(`UPDATE janji_temu SET status`).
		WithArgs(StatusSelesai, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.UpdateAppointmentStatus(99, StatusSelesai)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointmentSchedule(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	tanggal := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE janji_temu`).
		WithArgs(tanggal, "09:30", RescheduleTunggu, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.UpdateAppointmentSchedule(1, tanggal, "09:30", RescheduleTunggu))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQrCodeExists(t *testing.T) {
	conn, mock, db := setupMockDB(t)
	defer conn.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("A1B2C3D4E5").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := db.QrCodeExists("A1B2C3D4E5")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
