package models

import "time"

// Respon API. Tanggal selalu "2006-01-02", waktu "15:04".

type TamuResponse struct {
	IDTamu  int    `json:"id_tamu"`
	Nama    string `json:"nama"`
	Telepon string `json:"telepon"`
}

type UserResponse struct {
	IDPengguna int    `json:"id_pengguna"`
	Nama       string `json:"nama"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
}

type AppointmentResponse struct {
	IDJanjiTemu int           `json:"id_janji_temu"`
	Tanggal     string        `json:"tanggal"`
	Waktu       string        `json:"waktu"`
	Status      string        `json:"status"`
	Keperluan   string        `json:"keperluan"`
	KodeQr      string        `json:"kode_qr,omitempty"`
	Reschedule  string        `json:"reschedule_status,omitempty"`
	Tamu        *TamuResponse `json:"tamu,omitempty"`
	Guru        *UserResponse `json:"guru,omitempty"`
}

type NotificationResponse struct {
	IDNotifikasi int       `json:"id_notifikasi"`
	Pesan        string    `json:"pesan"`
	Waktu        time.Time `json:"waktu"`
	IsRead       bool      `json:"is_read"`
}

type PagedResponse struct {
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  interface{} `json:"data"`
}

type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type TeacherStat struct {
	IDGuru    int    `json:"id_guru"`
	Nama      string `json:"nama"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type DailyStat struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type WeeklyStat struct {
	WeekNumber int `json:"week_number"`
	Total      int `json:"total"`
	Completed  int `json:"completed"`
}

type DailyReportResponse struct {
	Date              string        `json:"date"`
	TotalAppointments int           `json:"total_appointments"`
	Completed         int           `json:"completed"`
	Waiting           int           `json:"waiting"`
	Late              int           `json:"late"`
	CompletionRate    float64       `json:"completion_rate"`
	ByTeacher         []TeacherStat `json:"by_teacher"`
}

type WeeklyReportResponse struct {
	WeekNumber        int         `json:"week_number"`
	Year              int         `json:"year"`
	TotalAppointments int         `json:"total_appointments"`
	CompletionRate    float64     `json:"completion_rate"`
	DailyStats        []DailyStat `json:"daily_stats"`
}

type MonthlyReportResponse struct {
	Month             int          `json:"month"`
	Year              int          `json:"year"`
	TotalAppointments int          `json:"total_appointments"`
	CompletionRate    float64      `json:"completion_rate"`
	WeeklyStats       []WeeklyStat `json:"weekly_stats"`
}
