package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret          string
	AccessTokenMinutes int
	RefreshTokenDays   int

	// Firebase (push ke perangkat guru)
	FirebaseCredentialsPath string

	// Scheduler
	SchedulerInterval     int // minutes between reminder sweeps
	ReminderLeadMinutes   int // send reminder N minutes before the appointment
	EnableReminders       bool
	EnableDailyReportMail bool

	// SMTP
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFromName    string
	SMTPFromEmail   string
	ReportRecipient string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️  Info: .env tidak ditemukan, membaca environment variable sistem.")
	}

	return &Config{
		// Server
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Auth
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenMinutes: getEnvInt("JWT_ACCESS_TTL_MINUTES", 30),
		RefreshTokenDays:   getEnvInt("REFRESH_TOKEN_TTL_DAYS", 7),

		// Firebase
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),

		// Scheduler
		SchedulerInterval:     getEnvInt("SCHEDULER_INTERVAL", 1),
		ReminderLeadMinutes:   getEnvInt("REMINDER_LEAD_MINUTES", 30),
		EnableReminders:       getEnvBool("ENABLE_REMINDERS", true),
		EnableDailyReportMail: getEnvBool("ENABLE_DAILY_REPORT_MAIL", false),

		// SMTP
		SMTPHost:        getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:    getEnvWithDefault("SMTP_FROM_NAME", "Buku Tamu Sekolah"),
		SMTPFromEmail:   getEnvWithDefault("SMTP_FROM_EMAIL", "noreply@sekolah.sch.id"),
		ReportRecipient: os.Getenv("REPORT_RECIPIENT"),
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// Validate memastikan konfigurasi wajib sudah terisi.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.EnableDailyReportMail && (c.SMTPUsername == "" || c.SMTPPassword == "") {
		log.Println("⚠️  Laporan harian via email aktif tetapi kredensial SMTP belum dikonfigurasi")
	}

	return nil
}
