package database

import "time"

// Status janji temu. Menunggu adalah status awal; Selesai dan Telat terminal
// untuk keperluan notifikasi.
const (
	StatusMenunggu = "Menunggu"
	StatusSelesai  = "Selesai"
	StatusTelat    = "Telat"
)

var ValidStatuses = []string{StatusMenunggu, StatusSelesai, StatusTelat}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Penanda reschedule, terpisah dari status. Kosong berarti belum pernah
// dijadwalkan ulang. Batal hanya dihasilkan oleh aksi administratif.
const (
	RescheduleNone   = ""
	RescheduleTunggu = "Tunggu"
	RescheduleBatal  = "Batal"
)

// Role pengguna: enumerasi tertutup, bukan string bebas.
const (
	RoleAdmin        = "Admin"
	RoleGuru         = "Guru"
	RolePenerimaTamu = "PenerimaTamu"
)

var ValidRoles = []string{RoleAdmin, RoleGuru, RolePenerimaTamu}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Appointment adalah baris janji_temu beserta data tamu/guru hasil join.
// Representasi kanonis: tanggal dan waktu terpisah; kolom disatukan atau
// dipecah hanya di lapisan ini.
type Appointment struct {
	ID         int
	IDTamu     int
	IDGuru     int
	Tanggal    time.Time // date only
	Waktu      string    // "15:04"
	Keperluan  string
	Status     string
	KodeQr     string
	Reschedule string

	TamuNama    string
	TamuTelepon string
	GuruNama    string
}

type Guest struct {
	ID      int
	Nama    string
	Telepon string
}

type User struct {
	ID          int
	Nama        string
	Email       string
	Password    string // bcrypt hash
	Role        string
	DeviceToken string
}

type Notification struct {
	ID         int
	IDPengguna int
	Pesan      string
	Waktu      time.Time
	IsRead     bool
}

type RefreshToken struct {
	ID         int
	IDPengguna int
	Token      string
	ExpiresAt  time.Time
	Revoked    bool
}
